package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

// ProductoMovido acumulado de unidades de un producto en un período.
type ProductoMovido struct {
	ProductoID int64
	Nombre     string
	Cantidad   int64
}

// TotalPorTipo unidades acumuladas por tipo de movimiento.
type TotalPorTipo struct {
	Tipo     string
	Cantidad int64
}

// TotalesPeriodo resultado agregado de un rango de fechas.
// Total solo es significativo cuando el rango incluye ventas.
type TotalesPeriodo struct {
	Unidades int64
	Total    decimal.Decimal // Σ cantidad × precio_unitario_venta
}

// ReporteRepository consultas de solo lectura para dashboard y reportes.
// Todos los agregados devuelven cero sobre conjuntos vacíos, nunca error.
type ReporteRepository interface {
	// StockBajo devuelve bienes con stock < threshold, ascendente por stock.
	StockBajo(ctx context.Context, threshold int64, limit int) ([]*entity.Producto, error)
	// TopMovidos agrupa movimientos del tipo dado por producto y suma cantidades, descendente.
	TopMovidos(ctx context.Context, tipo string, desde, hasta time.Time, limit int) ([]ProductoMovido, error)
	// TotalesPeriodo suma unidades y dinero en [desde, hasta], opcionalmente filtrado por tipo.
	TotalesPeriodo(ctx context.Context, desde, hasta time.Time, tipo string) (TotalesPeriodo, error)
	// ValorInventario devuelve Σ precio × stock sobre todo el catálogo (precio NULL cuenta como 0).
	ValorInventario(ctx context.Context) (decimal.Decimal, error)
	CountProductos(ctx context.Context) (int64, error)
	// UnidadesPorTipo agrupa por tipo en el rango, excluyendo nuevo_producto.
	UnidadesPorTipo(ctx context.Context, desde, hasta time.Time) ([]TotalPorTipo, error)
}
