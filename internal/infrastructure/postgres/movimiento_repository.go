package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un movimiento del libro y asigna el ID generado.
func (r *MovimientoRepo) Create(ctx context.Context, m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (producto_id, tipo, cantidad, precio_unitario_venta, fecha, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	err := r.q.QueryRow(ctx, query,
		m.ProductoID, m.Tipo, m.Cantidad, m.PrecioUnitarioVenta, m.Fecha, createdBy,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, con los datos del producto (JOIN).
func (r *MovimientoRepo) GetByID(ctx context.Context, id int64) (*entity.Movimiento, error) {
	query := `
		SELECT m.id, m.producto_id, m.tipo, m.cantidad, m.precio_unitario_venta, m.fecha,
		       COALESCE(m.created_by, ''), p.nombre, p.codigo_barras
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		WHERE m.id = $1`
	var m entity.Movimiento
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.PrecioUnitarioVenta, &m.Fecha,
		&m.CreatedBy, &m.ProductoNombre, &m.ProductoCodigo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// List devuelve movimientos del libro según el filtro, más recientes primero.
func (r *MovimientoRepo) List(ctx context.Context, filter repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	return r.list(ctx, filter, "DESC")
}

// ListForReport igual que List pero ascendente por fecha (orden de impresión).
func (r *MovimientoRepo) ListForReport(ctx context.Context, filter repository.MovimientoFilter) ([]*entity.Movimiento, error) {
	return r.list(ctx, filter, "ASC")
}

func (r *MovimientoRepo) list(ctx context.Context, filter repository.MovimientoFilter, order string) ([]*entity.Movimiento, error) {
	query := `
		SELECT m.id, m.producto_id, m.tipo, m.cantidad, m.precio_unitario_venta, m.fecha,
		       COALESCE(m.created_by, ''), p.nombre, p.codigo_barras
		FROM movimientos m
		JOIN productos p ON p.id = m.producto_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.nombre ILIKE $%d OR p.codigo_barras ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.FechaInicio != nil {
		query += fmt.Sprintf(" AND m.fecha >= $%d", pos)
		args = append(args, *filter.FechaInicio)
		pos++
	}
	if filter.FechaFin != nil {
		query += fmt.Sprintf(" AND m.fecha <= $%d", pos)
		args = append(args, *filter.FechaFin)
		pos++
	}
	if filter.Tipo != "" {
		query += fmt.Sprintf(" AND m.tipo = $%d", pos)
		args = append(args, filter.Tipo)
		pos++
	}
	if filter.ProductoID != 0 {
		query += fmt.Sprintf(" AND m.producto_id = $%d", pos)
		args = append(args, filter.ProductoID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.fecha %s, m.id %s", order, order)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.PrecioUnitarioVenta,
			&m.Fecha, &m.CreatedBy, &m.ProductoNombre, &m.ProductoCodigo); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProducto cuenta los asientos del libro de un producto.
func (r *MovimientoRepo) CountByProducto(ctx context.Context, productoID int64) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM movimientos WHERE producto_id = $1`, productoID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return count, nil
}

// Delete elimina un movimiento por ID. No recalcula stock: el asiento desaparece del
// historial pero el stock del producto queda como está.
func (r *MovimientoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByProducto elimina todos los movimientos de un producto y devuelve cuántos eran.
func (r *MovimientoRepo) DeleteByProducto(ctx context.Context, productoID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movimientos WHERE producto_id = $1`, productoID)
	if err != nil {
		return 0, fmt.Errorf("delete movimientos por producto: %w", err)
	}
	return cmd.RowsAffected(), nil
}
