package dto

import "github.com/shopspring/decimal"

// Tipos de reporte PDF admitidos por GET /api/reportes/pdf.
const (
	ReporteDiario         = "diario"
	ReporteMensual        = "mensual"
	ReporteProducto       = "producto"
	ReporteVentasDia      = "ventas_dia"
	ReporteVentasRango    = "ventas_rango"
	ReporteVentasProducto = "ventas_producto"
)

// ReporteRequest parámetros de generación de un reporte PDF.
// Fecha aplica a diario/mensual/ventas_dia; FechaInicio/FechaFin a los rangos;
// ProductoID a producto/ventas_producto.
type ReporteRequest struct {
	Tipo        string `query:"tipo"`
	Fecha       string `query:"fecha"`        // yyyy-mm-dd
	FechaInicio string `query:"fecha_inicio"` // yyyy-mm-dd
	FechaFin    string `query:"fecha_fin"`    // yyyy-mm-dd
	ProductoID  int64  `query:"producto_id"`
}

// TotalesPeriodoResponse respuesta de GET /api/reportes/totales.
type TotalesPeriodoResponse struct {
	Unidades int64           `json:"unidades"`
	Total    decimal.Decimal `json:"total"`
}

// ValorInventarioResponse respuesta de GET /api/reportes/valor-inventario.
type ValorInventarioResponse struct {
	Valor decimal.Decimal `json:"valor"`
}
