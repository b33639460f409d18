package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/application/reports"
	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// recordingMovimientoRepo devuelve movimientos fijos y captura el último filtro.
type recordingMovimientoRepo struct {
	movimientos []*entity.Movimiento
	lastFilter  repository.MovimientoFilter
}

func (r *recordingMovimientoRepo) Create(context.Context, *entity.Movimiento) error { return nil }
func (r *recordingMovimientoRepo) GetByID(context.Context, int64) (*entity.Movimiento, error) {
	return nil, nil
}
func (r *recordingMovimientoRepo) List(_ context.Context, f repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	r.lastFilter = f
	return r.movimientos, nil
}
func (r *recordingMovimientoRepo) ListForReport(_ context.Context, f repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	r.lastFilter = f
	return r.movimientos, nil
}
func (r *recordingMovimientoRepo) CountByProducto(context.Context, int64) (int64, error) {
	return 0, nil
}
func (r *recordingMovimientoRepo) Delete(context.Context, int64) error { return nil }
func (r *recordingMovimientoRepo) DeleteByProducto(context.Context, int64) (int64, error) {
	return 0, nil
}

// fixedProductoRepo resuelve productos por ID desde un mapa.
type fixedProductoRepo struct {
	byID map[int64]*entity.Producto
}

func (r *fixedProductoRepo) Create(context.Context, *entity.Producto) error { return nil }
func (r *fixedProductoRepo) GetByID(_ context.Context, id int64) (*entity.Producto, error) {
	return r.byID[id], nil
}
func (r *fixedProductoRepo) GetByCodigoBarras(context.Context, string) (*entity.Producto, error) {
	return nil, nil
}
func (r *fixedProductoRepo) GetByCodigoBarrasForUpdate(context.Context, string) (*entity.Producto, error) {
	return nil, nil
}
func (r *fixedProductoRepo) ExistsCodigoBarras(context.Context, string, int64) (bool, error) {
	return false, nil
}
func (r *fixedProductoRepo) Update(context.Context, *entity.Producto) error      { return nil }
func (r *fixedProductoRepo) UpdateStock(context.Context, int64, int64) error     { return nil }
func (r *fixedProductoRepo) List(context.Context, string, int, int) ([]*entity.Producto, error) {
	return nil, nil
}
func (r *fixedProductoRepo) Delete(context.Context, int64) error { return nil }

// fixedReporteRepo agregados fijos.
type fixedReporteRepo struct {
	totales repository.TotalesPeriodo
	valor   decimal.Decimal
}

func (r *fixedReporteRepo) StockBajo(context.Context, int64, int) ([]*entity.Producto, error) {
	return nil, nil
}
func (r *fixedReporteRepo) TopMovidos(context.Context, string, time.Time, time.Time, int) ([]repository.ProductoMovido, error) {
	return nil, nil
}
func (r *fixedReporteRepo) TotalesPeriodo(context.Context, time.Time, time.Time, string) (repository.TotalesPeriodo, error) {
	return r.totales, nil
}
func (r *fixedReporteRepo) ValorInventario(context.Context) (decimal.Decimal, error) {
	return r.valor, nil
}
func (r *fixedReporteRepo) CountProductos(context.Context) (int64, error) { return 0, nil }
func (r *fixedReporteRepo) UnidadesPorTipo(context.Context, time.Time, time.Time) ([]repository.TotalPorTipo, error) {
	return nil, nil
}

// capturingGenerator guarda el dataset recibido y devuelve bytes fijos.
type capturingGenerator struct {
	lastData *reports.ReporteData
}

func (g *capturingGenerator) GenerateReportePDF(_ context.Context, data *reports.ReporteData) ([]byte, error) {
	g.lastData = data
	return []byte("%PDF-fake"), nil
}

func buildReporteUC(movimientos []*entity.Movimiento, productos map[int64]*entity.Producto) (*reports.ReporteUseCase, *recordingMovimientoRepo, *capturingGenerator) {
	movRepo := &recordingMovimientoRepo{movimientos: movimientos}
	gen := &capturingGenerator{}
	uc := reports.NewReporteUseCase(movRepo, &fixedProductoRepo{byID: productos}, &fixedReporteRepo{}, gen)
	return uc, movRepo, gen
}

func venta(productoID, cantidad int64, precio float64) *entity.Movimiento {
	return &entity.Movimiento{
		ProductoID:          productoID,
		Tipo:                entity.MovimientoVenta,
		Cantidad:            cantidad,
		PrecioUnitarioVenta: decimal.NewFromFloat(precio),
		Fecha:               time.Now(),
		ProductoNombre:      "Producto",
		ProductoCodigo:      "COD",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerarPDF
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerarPDF_VentasDiaTotalizaDinero(t *testing.T) {
	uc, movRepo, gen := buildReporteUC([]*entity.Movimiento{
		venta(1, 2, 10000),
		venta(2, 1, 5000),
	}, nil)

	pdfBytes, filename, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:  dto.ReporteVentasDia,
		Fecha: "2026-08-31",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "Reporte_de_Ventas_del_Día_2026-08-31.pdf", filename)

	require.NotNil(t, gen.lastData)
	assert.True(t, gen.lastData.EsVenta)
	assert.Equal(t, int64(3), gen.lastData.TotalUnidades)
	assert.True(t, gen.lastData.TotalVendido.Equal(decimal.NewFromInt(25000)),
		"2×10000 + 1×5000 = 25000")

	assert.Equal(t, entity.MovimientoVenta, movRepo.lastFilter.Tipo,
		"el filtro debe restringirse a ventas")
	require.NotNil(t, movRepo.lastFilter.FechaInicio)
	assert.Equal(t, 31, movRepo.lastFilter.FechaInicio.Day())
}

func TestGenerarPDF_DiarioGeneralNoEsVenta(t *testing.T) {
	uc, movRepo, gen := buildReporteUC([]*entity.Movimiento{
		{ProductoID: 1, Tipo: entity.MovimientoIngreso, Cantidad: 7, Fecha: time.Now()},
	}, nil)

	_, filename, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:  dto.ReporteDiario,
		Fecha: "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "Reporte_Diario_General_2026-09-01.pdf", filename)
	assert.False(t, gen.lastData.EsVenta)
	assert.Equal(t, int64(7), gen.lastData.TotalUnidades)
	assert.True(t, gen.lastData.TotalVendido.IsZero(), "un reporte general no acumula dinero")
	assert.Empty(t, movRepo.lastFilter.Tipo, "el reporte general incluye todos los tipos")
}

func TestGenerarPDF_MensualCubreElMes(t *testing.T) {
	uc, movRepo, _ := buildReporteUC(nil, nil)

	_, filename, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:  dto.ReporteMensual,
		Fecha: "2026-02-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "Reporte_Mensual_General_Febrero_2026.pdf", filename)
	require.NotNil(t, movRepo.lastFilter.FechaInicio)
	require.NotNil(t, movRepo.lastFilter.FechaFin)
	assert.Equal(t, 1, movRepo.lastFilter.FechaInicio.Day())
	assert.Equal(t, time.February, movRepo.lastFilter.FechaFin.Month())
	assert.Equal(t, 28, movRepo.lastFilter.FechaFin.Day(), "febrero 2026 termina el 28")
}

func TestGenerarPDF_ProductoUsaNombreEnTitulo(t *testing.T) {
	productos := map[int64]*entity.Producto{
		4: {ID: 4, Nombre: "Café 500g"},
	}
	uc, movRepo, _ := buildReporteUC(nil, productos)

	_, filename, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:       dto.ReporteProducto,
		ProductoID: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "Reporte_Historial_Producto_Café_500g.pdf", filename)
	assert.Equal(t, int64(4), movRepo.lastFilter.ProductoID)
}

func TestGenerarPDF_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)

	_, _, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:       dto.ReporteProducto,
		ProductoID: 99,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerarPDF_VentasRangoRequiereFechas(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)

	_, _, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:        dto.ReporteVentasRango,
		FechaInicio: "2026-01-01",
		// sin fecha_fin
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerarPDF_VentasRangoInvertido(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)

	_, _, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:        dto.ReporteVentasRango,
		FechaInicio: "2026-03-01",
		FechaFin:    "2026-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un rango con fin anterior al inicio es un error del llamador")
}

func TestGenerarPDF_TipoDesconocido(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)

	_, _, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{Tipo: "trimestral"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerarPDF_FechaMalformada(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)

	_, _, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:  dto.ReporteDiario,
		Fecha: "31/08/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerarPDF_PeriodoVacioGeneraIgual(t *testing.T) {
	uc, _, gen := buildReporteUC(nil, nil)

	pdfBytes, _, err := uc.GenerarPDF(context.Background(), dto.ReporteRequest{
		Tipo:  dto.ReporteVentasDia,
		Fecha: "2026-01-01",
	})
	require.NoError(t, err, "un período sin movimientos produce un PDF con totales en cero")
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, int64(0), gen.lastData.TotalUnidades)
	assert.True(t, gen.lastData.TotalVendido.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Agregados JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalesPeriodo_RangoInvertido(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)
	ahora := time.Now()

	_, err := uc.TotalesPeriodo(context.Background(), ahora, ahora.Add(-time.Hour), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotalesPeriodo_TipoInvalido(t *testing.T) {
	uc, _, _ := buildReporteUC(nil, nil)
	ahora := time.Now()

	_, err := uc.TotalesPeriodo(context.Background(), ahora.Add(-time.Hour), ahora, "otro")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTotalesPeriodo_VacioDevuelveCeros(t *testing.T) {
	movRepo := &recordingMovimientoRepo{}
	uc := reports.NewReporteUseCase(movRepo, &fixedProductoRepo{}, &fixedReporteRepo{}, &capturingGenerator{})
	ahora := time.Now()

	out, err := uc.TotalesPeriodo(context.Background(), ahora.Add(-time.Hour), ahora, entity.MovimientoVenta)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Unidades)
	assert.True(t, out.Total.IsZero())
}

func TestValorInventario_RedondeaADosDecimales(t *testing.T) {
	repo := &fixedReporteRepo{valor: decimal.RequireFromString("1234.5678")}
	uc := reports.NewReporteUseCase(&recordingMovimientoRepo{}, &fixedProductoRepo{}, repo, &capturingGenerator{})

	out, err := uc.ValorInventario(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1234.57", out.Valor.StringFixed(2))
}

// ──────────────────────────────────────────────────────────────────────────────
// Filename
// ──────────────────────────────────────────────────────────────────────────────

func TestFilenameForTitulo(t *testing.T) {
	assert.Equal(t, "Reporte_Diario_General_2026-09-01.pdf",
		reports.FilenameForTitulo("Reporte Diario General 2026-09-01"))
	assert.Equal(t, "Reporte_Ventas_Producto_Café_2026-01-01_a_2026-01-31.pdf",
		reports.FilenameForTitulo("Reporte Ventas Producto Café (2026-01-01 a 2026-01-31)"))
}
