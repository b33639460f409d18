package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día más los acumulados de los últimos 30 días para el gráfico.
type DashboardSummaryDTO struct {
	TotalProductos      int64           `json:"total_productos"`
	UnidadesVendidasHoy int64           `json:"unidades_vendidas_hoy"`
	DineroVendidoHoy    decimal.Decimal `json:"dinero_vendido_hoy"` // Σ cantidad × precio_unitario_venta

	// Bienes con stock < 15, ascendente por stock (máx. 5).
	StockBajo []StockBajoDTO `json:"stock_bajo"`

	// Top 5 productos por unidades vendidas hoy.
	MasVendidosHoy []ProductoMovidoDTO `json:"mas_vendidos_hoy"`

	// Unidades por tipo de movimiento en los últimos 30 días (sin nuevo_producto).
	MovimientosPorTipo []TotalPorTipoDTO `json:"movimientos_por_tipo"`
}

// StockBajoDTO widget de productos por agotarse.
type StockBajoDTO struct {
	ProductoID int64  `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Stock      int64  `json:"stock"`
}

// ProductoMovidoDTO acumulado de unidades de un producto.
type ProductoMovidoDTO struct {
	ProductoID int64  `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Cantidad   int64  `json:"cantidad"`
}

// TotalPorTipoDTO unidades acumuladas por tipo de movimiento (serie del gráfico).
type TotalPorTipoDTO struct {
	Tipo     string `json:"tipo"`
	Cantidad int64  `json:"cantidad"`
}
