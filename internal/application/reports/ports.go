package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

// ReporteData conjunto de datos listo para maquetar en PDF.
// EsVenta decide el formato de la tabla y del total: los reportes de ventas
// muestran precio unitario y total en dinero; los generales, unidades y tipo.
type ReporteData struct {
	Titulo        string
	EsVenta       bool
	Movimientos   []*entity.Movimiento // ascendente por fecha
	TotalUnidades int64
	TotalVendido  decimal.Decimal
	GeneradoEn    time.Time
}

// ReportePDFGenerator genera el documento PDF de un reporte.
type ReportePDFGenerator interface {
	GenerateReportePDF(ctx context.Context, data *ReporteData) ([]byte, error)
}
