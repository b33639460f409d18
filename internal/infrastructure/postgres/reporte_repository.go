package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de solo lectura para el dashboard y los reportes.
// Todos los agregados usan COALESCE: un período sin movimientos devuelve cero, no error.
type ReporteRepo struct {
	pool *pgxpool.Pool
}

// NewReporteRepository construye el adaptador de reportes.
func NewReporteRepository(pool *pgxpool.Pool) *ReporteRepo {
	return &ReporteRepo{pool: pool}
}

// StockBajo devuelve bienes activos con stock por debajo del umbral, los más críticos primero.
// Los servicios no manejan stock y quedan fuera.
func (r *ReporteRepo) StockBajo(ctx context.Context, threshold int64, limit int) ([]*entity.Producto, error) {
	const query = `
	SELECT id, nombre, descripcion, precio, tipo, stock, codigo_barras, activo, created_at, updated_at
	FROM productos
	WHERE tipo = 'bien' AND activo AND stock < $1
	ORDER BY stock ASC, nombre ASC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte.StockBajo: %w", err)
	}
	defer rows.Close()

	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Tipo, &p.Stock,
			&p.CodigoBarras, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("reporte.StockBajo scan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// TopMovidos agrupa los movimientos del tipo dado por producto y suma cantidades, descendente.
func (r *ReporteRepo) TopMovidos(ctx context.Context, tipo string, desde, hasta time.Time, limit int) ([]repository.ProductoMovido, error) {
	const query = `
	SELECT
	    p.id          AS producto_id,
	    p.nombre,
	    SUM(m.cantidad) AS cantidad
	FROM movimientos m
	JOIN productos p ON p.id = m.producto_id
	WHERE m.tipo = $1
	  AND m.fecha BETWEEN $2 AND $3
	GROUP BY p.id, p.nombre
	ORDER BY cantidad DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, tipo, desde, hasta, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte.TopMovidos: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductoMovido
	for rows.Next() {
		var row repository.ProductoMovido
		if err := rows.Scan(&row.ProductoID, &row.Nombre, &row.Cantidad); err != nil {
			return nil, fmt.Errorf("reporte.TopMovidos scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reporte.TopMovidos rows: %w", err)
	}
	if results == nil {
		results = []repository.ProductoMovido{}
	}
	return results, nil
}

// TotalesPeriodo suma unidades y dinero (cantidad × precio_unitario_venta) del rango,
// opcionalmente filtrado por tipo de movimiento.
func (r *ReporteRepo) TotalesPeriodo(ctx context.Context, desde, hasta time.Time, tipo string) (repository.TotalesPeriodo, error) {
	query := `
	SELECT
	    COALESCE(SUM(cantidad), 0)                         AS unidades,
	    COALESCE(SUM(cantidad * precio_unitario_venta), 0) AS total
	FROM movimientos
	WHERE fecha BETWEEN $1 AND $2`
	args := []any{desde, hasta}
	if tipo != "" {
		query += " AND tipo = $3"
		args = append(args, tipo)
	}

	var t repository.TotalesPeriodo
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.Unidades, &t.Total); err != nil {
		return repository.TotalesPeriodo{}, fmt.Errorf("reporte.TotalesPeriodo: %w", err)
	}
	return t, nil
}

// ValorInventario devuelve Σ precio × stock sobre todo el catálogo (precio NULL cuenta como 0).
func (r *ReporteRepo) ValorInventario(ctx context.Context) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(COALESCE(precio, 0) * stock), 0) FROM productos`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reporte.ValorInventario: %w", err)
	}
	return total, nil
}

// CountProductos cuenta los productos del catálogo.
func (r *ReporteRepo) CountProductos(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("reporte.CountProductos: %w", err)
	}
	return count, nil
}

// UnidadesPorTipo agrupa unidades por tipo de movimiento en el rango.
// Excluye nuevo_producto: el alta de catálogo no es tráfico operativo.
func (r *ReporteRepo) UnidadesPorTipo(ctx context.Context, desde, hasta time.Time) ([]repository.TotalPorTipo, error) {
	const query = `
	SELECT tipo, SUM(cantidad) AS cantidad
	FROM movimientos
	WHERE fecha BETWEEN $1 AND $2
	  AND tipo <> 'nuevo_producto'
	GROUP BY tipo
	ORDER BY tipo`

	rows, err := r.pool.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reporte.UnidadesPorTipo: %w", err)
	}
	defer rows.Close()

	var results []repository.TotalPorTipo
	for rows.Next() {
		var row repository.TotalPorTipo
		if err := rows.Scan(&row.Tipo, &row.Cantidad); err != nil {
			return nil, fmt.Errorf("reporte.UnidadesPorTipo scan: %w", err)
		}
		results = append(results, row)
	}
	if results == nil {
		results = []repository.TotalPorTipo{}
	}
	return results, rows.Err()
}
