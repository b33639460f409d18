package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// ReporteUseCase arma los datasets de reporte (PDF y agregados JSON).
// Lectura pura: no muta catálogo ni libro.
type ReporteUseCase struct {
	movimientoRepo repository.MovimientoRepository
	productoRepo   repository.ProductoRepository
	reporteRepo    repository.ReporteRepository
	generator      ReportePDFGenerator
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(
	movimientoRepo repository.MovimientoRepository,
	productoRepo repository.ProductoRepository,
	reporteRepo repository.ReporteRepository,
	generator ReportePDFGenerator,
) *ReporteUseCase {
	return &ReporteUseCase{
		movimientoRepo: movimientoRepo,
		productoRepo:   productoRepo,
		reporteRepo:    reporteRepo,
		generator:      generator,
	}
}

// GenerarPDF resuelve el tipo de reporte, consulta el libro y genera el PDF.
// Devuelve los bytes del documento y el nombre de archivo derivado del título.
func (uc *ReporteUseCase) GenerarPDF(ctx context.Context, in dto.ReporteRequest) (pdfBytes []byte, filename string, err error) {
	filter, titulo, esVenta, err := uc.resolver(ctx, in)
	if err != nil {
		return nil, "", err
	}

	movimientos, err := uc.movimientoRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: consultar movimientos: %w", err)
	}

	data := &ReporteData{
		Titulo:      titulo,
		EsVenta:     esVenta,
		Movimientos: movimientos,
		GeneradoEn:  time.Now(),
	}
	for _, m := range movimientos {
		data.TotalUnidades += m.Cantidad
		if esVenta {
			data.TotalVendido = data.TotalVendido.Add(m.TotalVenta())
		}
	}

	pdfBytes, err = uc.generator.GenerateReportePDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generación fallida: %w", err)
	}
	return pdfBytes, FilenameForTitulo(titulo), nil
}

// resolver traduce la petición en filtro de libro + título, validando parámetros.
func (uc *ReporteUseCase) resolver(ctx context.Context, in dto.ReporteRequest) (repository.MovimientoFilter, string, bool, error) {
	var filter repository.MovimientoFilter

	fecha := time.Now()
	if in.Fecha != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.Fecha, time.Local)
		if err != nil {
			return filter, "", false, domain.ErrInvalidInput
		}
		fecha = parsed
	}

	var inicio, fin *time.Time
	if in.FechaInicio != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.FechaInicio, time.Local)
		if err != nil {
			return filter, "", false, domain.ErrInvalidInput
		}
		inicio = &parsed
	}
	if in.FechaFin != "" {
		parsed, err := time.ParseInLocation("2006-01-02", in.FechaFin, time.Local)
		if err != nil {
			return filter, "", false, domain.ErrInvalidInput
		}
		// Fin de rango inclusivo: hasta el último instante del día.
		cierre := parsed.Add(24*time.Hour - time.Second)
		fin = &cierre
	}
	if inicio != nil && fin != nil && fin.Before(*inicio) {
		return filter, "", false, domain.ErrInvalidInput
	}

	switch in.Tipo {
	case dto.ReporteDiario:
		desde, hasta := diaCompleto(fecha)
		filter.FechaInicio, filter.FechaFin = &desde, &hasta
		return filter, fmt.Sprintf("Reporte Diario General %s", fecha.Format("2006-01-02")), false, nil

	case dto.ReporteMensual:
		desde := time.Date(fecha.Year(), fecha.Month(), 1, 0, 0, 0, 0, fecha.Location())
		hasta := desde.AddDate(0, 1, 0).Add(-time.Second)
		filter.FechaInicio, filter.FechaFin = &desde, &hasta
		return filter, fmt.Sprintf("Reporte Mensual General %s", mesLabel(fecha)), false, nil

	case dto.ReporteProducto:
		nombre, err := uc.nombreProducto(ctx, in.ProductoID)
		if err != nil {
			return filter, "", false, err
		}
		filter.ProductoID = in.ProductoID
		return filter, fmt.Sprintf("Reporte Historial Producto %s", nombre), false, nil

	case dto.ReporteVentasDia:
		desde, hasta := diaCompleto(fecha)
		filter.Tipo = entity.MovimientoVenta
		filter.FechaInicio, filter.FechaFin = &desde, &hasta
		return filter, fmt.Sprintf("Reporte de Ventas del Día %s", fecha.Format("2006-01-02")), true, nil

	case dto.ReporteVentasRango:
		if inicio == nil || fin == nil {
			return filter, "", false, domain.ErrInvalidInput
		}
		filter.Tipo = entity.MovimientoVenta
		filter.FechaInicio, filter.FechaFin = inicio, fin
		titulo := fmt.Sprintf("Reporte de Ventas %s a %s",
			inicio.Format("2006-01-02"), fin.Format("2006-01-02"))
		return filter, titulo, true, nil

	case dto.ReporteVentasProducto:
		if inicio == nil || fin == nil {
			return filter, "", false, domain.ErrInvalidInput
		}
		nombre, err := uc.nombreProducto(ctx, in.ProductoID)
		if err != nil {
			return filter, "", false, err
		}
		filter.Tipo = entity.MovimientoVenta
		filter.ProductoID = in.ProductoID
		filter.FechaInicio, filter.FechaFin = inicio, fin
		titulo := fmt.Sprintf("Reporte Ventas Producto %s (%s a %s)",
			nombre, inicio.Format("2006-01-02"), fin.Format("2006-01-02"))
		return filter, titulo, true, nil
	}
	return filter, "", false, domain.ErrInvalidInput
}

func (uc *ReporteUseCase) nombreProducto(ctx context.Context, id int64) (string, error) {
	if id == 0 {
		return "", domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if producto == nil {
		return "", domain.ErrNotFound
	}
	return producto.Nombre, nil
}

// TotalesPeriodo suma unidades y dinero de [desde, hasta], opcionalmente por tipo.
// Un rango sin movimientos devuelve ceros.
func (uc *ReporteUseCase) TotalesPeriodo(ctx context.Context, desde, hasta time.Time, tipo string) (*dto.TotalesPeriodoResponse, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidInput
	}
	if tipo != "" && !entity.TipoMovimientoValido(tipo) {
		return nil, domain.ErrInvalidInput
	}
	totales, err := uc.reporteRepo.TotalesPeriodo(ctx, desde, hasta, tipo)
	if err != nil {
		return nil, err
	}
	return &dto.TotalesPeriodoResponse{Unidades: totales.Unidades, Total: totales.Total.Round(2)}, nil
}

// ValorInventario devuelve Σ precio × stock del catálogo completo.
func (uc *ReporteUseCase) ValorInventario(ctx context.Context) (*dto.ValorInventarioResponse, error) {
	valor, err := uc.reporteRepo.ValorInventario(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ValorInventarioResponse{Valor: valor.Round(2)}, nil
}

// FilenameForTitulo deriva el nombre del archivo PDF del título del reporte.
func FilenameForTitulo(titulo string) string {
	s := strings.NewReplacer(" ", "_", "/", "-", ":", "", "(", "", ")", "").Replace(titulo)
	return s + ".pdf"
}

func diaCompleto(t time.Time) (time.Time, time.Time) {
	desde := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return desde, desde.Add(24*time.Hour - time.Nanosecond)
}

// mesLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func mesLabel(t time.Time) string {
	meses := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", meses[t.Month()-1], t.Year())
}
