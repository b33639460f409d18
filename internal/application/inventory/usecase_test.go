package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sistema-inventario/internal/application/inventory"
	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[string]*entity.Producto // por código de barras
	nextID    int64
}

func newFakeProductoRepo(productos ...*entity.Producto) *fakeProductoRepo {
	r := &fakeProductoRepo{productos: map[string]*entity.Producto{}, nextID: 1}
	for _, p := range productos {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.productos[p.CodigoBarras] = p
	}
	return r
}

func (r *fakeProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	if _, ok := r.productos[p.CodigoBarras]; ok {
		return domain.ErrDuplicate
	}
	p.ID = r.nextID
	r.nextID++
	r.productos[p.CodigoBarras] = p
	return nil
}

func (r *fakeProductoRepo) GetByID(_ context.Context, id int64) (*entity.Producto, error) {
	for _, p := range r.productos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductoRepo) GetByCodigoBarras(_ context.Context, codigo string) (*entity.Producto, error) {
	return r.productos[codigo], nil
}

func (r *fakeProductoRepo) GetByCodigoBarrasForUpdate(ctx context.Context, codigo string) (*entity.Producto, error) {
	return r.GetByCodigoBarras(ctx, codigo)
}

func (r *fakeProductoRepo) ExistsCodigoBarras(_ context.Context, codigo string, excludeID int64) (bool, error) {
	p, ok := r.productos[codigo]
	return ok && p.ID != excludeID, nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	for codigo, existing := range r.productos {
		if existing.ID == p.ID {
			delete(r.productos, codigo)
			r.productos[p.CodigoBarras] = p
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProductoRepo) UpdateStock(_ context.Context, id int64, stock int64) error {
	for _, p := range r.productos {
		if p.ID == id {
			p.Stock = stock
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeProductoRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Producto, error) {
	var list []*entity.Producto
	for _, p := range r.productos {
		list = append(list, p)
	}
	return list, nil
}

func (r *fakeProductoRepo) Delete(_ context.Context, id int64) error {
	for codigo, p := range r.productos {
		if p.ID == id {
			delete(r.productos, codigo)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMovimientoRepo struct {
	movimientos []*entity.Movimiento
	nextID      int64
}

func newFakeMovimientoRepo() *fakeMovimientoRepo {
	return &fakeMovimientoRepo{nextID: 1}
}

func (r *fakeMovimientoRepo) Create(_ context.Context, m *entity.Movimiento) error {
	m.ID = r.nextID
	r.nextID++
	r.movimientos = append(r.movimientos, m)
	return nil
}

func (r *fakeMovimientoRepo) GetByID(_ context.Context, id int64) (*entity.Movimiento, error) {
	for _, m := range r.movimientos {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovimientoRepo) List(_ context.Context, _ repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	return r.movimientos, nil
}

func (r *fakeMovimientoRepo) ListForReport(_ context.Context, _ repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	return r.movimientos, nil
}

func (r *fakeMovimientoRepo) CountByProducto(_ context.Context, productoID int64) (int64, error) {
	var count int64
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMovimientoRepo) Delete(_ context.Context, id int64) error {
	for i, m := range r.movimientos {
		if m.ID == id {
			r.movimientos = append(r.movimientos[:i], r.movimientos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMovimientoRepo) DeleteByProducto(_ context.Context, productoID int64) (int64, error) {
	var kept []*entity.Movimiento
	var deleted int64
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.movimientos = kept
	return deleted, nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes, sin transacción real.
// La secuencia dentro de operar garantiza que un error corta antes de mutar estado.
type fakeTxRunner struct {
	productos   *fakeProductoRepo
	movimientos *fakeMovimientoRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productoRepo repository.ProductoRepository,
	movimientoRepo repository.MovimientoRepository,
) error) error {
	return fn(r.productos, r.movimientos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func bien(codigo string, stock int64, precio float64) *entity.Producto {
	return &entity.Producto{
		Nombre:       "Producto " + codigo,
		Precio:       decimal.NewNullDecimal(decimal.NewFromFloat(precio)),
		Tipo:         entity.TipoBien,
		Stock:        stock,
		CodigoBarras: codigo,
		Activo:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func servicio(codigo string, precio float64) *entity.Producto {
	return &entity.Producto{
		Nombre:       "Servicio " + codigo,
		Precio:       decimal.NewNullDecimal(decimal.NewFromFloat(precio)),
		Tipo:         entity.TipoServicio,
		Stock:        0,
		CodigoBarras: codigo,
		Activo:       true,
	}
}

func buildUseCase(productos ...*entity.Producto) (*inventory.StockUseCase, *fakeProductoRepo, *fakeMovimientoRepo) {
	productoRepo := newFakeProductoRepo(productos...)
	movimientoRepo := newFakeMovimientoRepo()
	uc := inventory.NewStockUseCase(&fakeTxRunner{productos: productoRepo, movimientos: movimientoRepo})
	return uc, productoRepo, movimientoRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Reingreso
// ──────────────────────────────────────────────────────────────────────────────

func TestReingreso_SumaStockYRegistraMovimiento(t *testing.T) {
	uc, productoRepo, movimientoRepo := buildUseCase(bien("750001", 10, 2500))

	res, err := uc.Reingreso(context.Background(), "user-1", "750001", 5)
	require.NoError(t, err)

	assert.Equal(t, int64(15), res.StockActual, "el stock debe subir de 10 a 15")
	assert.Equal(t, entity.MovimientoIngreso, res.Tipo)

	p, _ := productoRepo.GetByCodigoBarras(context.Background(), "750001")
	assert.Equal(t, int64(15), p.Stock, "el stock persistido debe reflejar el reingreso")

	require.Len(t, movimientoRepo.movimientos, 1)
	mov := movimientoRepo.movimientos[0]
	assert.Equal(t, entity.MovimientoIngreso, mov.Tipo)
	assert.Equal(t, int64(5), mov.Cantidad)
	assert.Equal(t, "user-1", mov.CreatedBy)
	assert.True(t, mov.PrecioUnitarioVenta.IsZero(), "un reingreso no lleva precio de venta")
}

func TestReingreso_ServicioRechazado(t *testing.T) {
	uc, _, movimientoRepo := buildUseCase(servicio("SVC-01", 30000))

	_, err := uc.Reingreso(context.Background(), "user-1", "SVC-01", 3)
	assert.ErrorIs(t, err, domain.ErrServicioSinStock)
	assert.Empty(t, movimientoRepo.movimientos, "una operación rechazada no registra asiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta
// ──────────────────────────────────────────────────────────────────────────────

func TestVenta_DescuentaStockYGuardaPrecio(t *testing.T) {
	uc, productoRepo, movimientoRepo := buildUseCase(bien("750002", 8, 12000))

	res, err := uc.Venta(context.Background(), "user-2", "750002", 3)
	require.NoError(t, err)

	assert.Equal(t, int64(5), res.StockActual)

	p, _ := productoRepo.GetByCodigoBarras(context.Background(), "750002")
	assert.Equal(t, int64(5), p.Stock)

	require.Len(t, movimientoRepo.movimientos, 1)
	mov := movimientoRepo.movimientos[0]
	assert.Equal(t, entity.MovimientoVenta, mov.Tipo)
	assert.True(t, mov.PrecioUnitarioVenta.Equal(decimal.NewFromInt(12000)),
		"el movimiento captura el precio del producto al momento de la venta")
	assert.True(t, mov.TotalVenta().Equal(decimal.NewFromInt(36000)))
}

func TestVenta_StockInsuficiente(t *testing.T) {
	uc, productoRepo, movimientoRepo := buildUseCase(bien("750003", 2, 5000))

	_, err := uc.Venta(context.Background(), "user-1", "750003", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := productoRepo.GetByCodigoBarras(context.Background(), "750003")
	assert.Equal(t, int64(2), p.Stock, "el stock no debe cambiar si la venta falla")
	assert.Empty(t, movimientoRepo.movimientos)
}

func TestVenta_VentaExactaDejaStockCero(t *testing.T) {
	uc, _, _ := buildUseCase(bien("750004", 3, 1000))

	res, err := uc.Venta(context.Background(), "user-1", "750004", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.StockActual, "vender todo el stock es válido; negativo no")
}

func TestVenta_ServicioNoTocaStock(t *testing.T) {
	uc, productoRepo, movimientoRepo := buildUseCase(servicio("SVC-02", 45000))

	res, err := uc.Venta(context.Background(), "user-1", "SVC-02", 10)
	require.NoError(t, err, "los servicios se venden sin límite de stock")

	assert.Equal(t, int64(0), res.StockActual)
	p, _ := productoRepo.GetByCodigoBarras(context.Background(), "SVC-02")
	assert.Equal(t, int64(0), p.Stock)

	require.Len(t, movimientoRepo.movimientos, 1)
	assert.True(t, movimientoRepo.movimientos[0].PrecioUnitarioVenta.Equal(decimal.NewFromInt(45000)))
}

func TestVenta_ProductoSinPrecioVendeConPrecioCero(t *testing.T) {
	p := bien("750005", 5, 0)
	p.Precio = decimal.NullDecimal{} // precio NULL
	uc, _, movimientoRepo := buildUseCase(p)

	_, err := uc.Venta(context.Background(), "user-1", "750005", 1)
	require.NoError(t, err)
	assert.True(t, movimientoRepo.movimientos[0].PrecioUnitarioVenta.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Salida
// ──────────────────────────────────────────────────────────────────────────────

func TestSalida_DescuentaStock(t *testing.T) {
	uc, productoRepo, movimientoRepo := buildUseCase(bien("750006", 10, 800))

	res, err := uc.Salida(context.Background(), "user-1", "750006", 4)
	require.NoError(t, err)

	assert.Equal(t, int64(6), res.StockActual)
	p, _ := productoRepo.GetByCodigoBarras(context.Background(), "750006")
	assert.Equal(t, int64(6), p.Stock)

	require.Len(t, movimientoRepo.movimientos, 1)
	mov := movimientoRepo.movimientos[0]
	assert.Equal(t, entity.MovimientoSalida, mov.Tipo)
	assert.True(t, mov.PrecioUnitarioVenta.IsZero(), "una salida manual no lleva precio")
}

func TestSalida_StockInsuficiente(t *testing.T) {
	uc, _, _ := buildUseCase(bien("750007", 1, 800))

	_, err := uc.Salida(context.Background(), "user-1", "750007", 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestSalida_ServicioRechazado(t *testing.T) {
	uc, _, _ := buildUseCase(servicio("SVC-03", 1000))

	_, err := uc.Salida(context.Background(), "user-1", "SVC-03", 1)
	assert.ErrorIs(t, err, domain.ErrServicioSinStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas comunes
// ──────────────────────────────────────────────────────────────────────────────

func TestOperar_ProductoInactivoBloqueado(t *testing.T) {
	p := bien("750008", 10, 100)
	p.Activo = false
	uc, _, movimientoRepo := buildUseCase(p)

	_, err := uc.Venta(context.Background(), "user-1", "750008", 1)
	assert.ErrorIs(t, err, domain.ErrProductoInactivo)

	_, err = uc.Reingreso(context.Background(), "user-1", "750008", 1)
	assert.ErrorIs(t, err, domain.ErrProductoInactivo,
		"un producto inactivo no admite ningún tipo de operación")

	assert.Empty(t, movimientoRepo.movimientos)
}

func TestOperar_ProductoNoEncontrado(t *testing.T) {
	uc, _, _ := buildUseCase()

	_, err := uc.Venta(context.Background(), "user-1", "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOperar_EntradaInvalida(t *testing.T) {
	uc, _, _ := buildUseCase(bien("750009", 10, 100))

	_, err := uc.Venta(context.Background(), "user-1", "", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "código vacío es inválido")

	_, err = uc.Venta(context.Background(), "user-1", "750009", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero es inválida")

	_, err = uc.Venta(context.Background(), "user-1", "750009", -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad negativa es inválida")
}
