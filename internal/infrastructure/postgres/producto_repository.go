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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, nombre, descripcion, precio, tipo, stock, codigo_barras, activo, created_at, updated_at`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto y asigna el ID generado.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio, tipo, stock, codigo_barras, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Nombre, p.Descripcion, p.Precio, p.Tipo, p.Stock, p.CodigoBarras, p.Activo, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(ctx context.Context, id int64) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get producto")
}

// GetByCodigoBarras obtiene un producto por código de barras.
func (r *ProductoRepo) GetByCodigoBarras(ctx context.Context, codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo_barras = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, codigo), "get producto by codigo")
}

// GetByCodigoBarrasForUpdate igual que GetByCodigoBarras pero bloqueando la fila.
// Solo tiene sentido dentro de una transacción (TxRunner).
func (r *ProductoRepo) GetByCodigoBarrasForUpdate(ctx context.Context, codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo_barras = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, codigo), "lock producto by codigo")
}

// ExistsCodigoBarras verifica si otro producto ya usa el código (excludeID = 0 considera todos).
func (r *ProductoRepo) ExistsCodigoBarras(ctx context.Context, codigo string, excludeID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM productos WHERE codigo_barras = $1 AND id <> $2)`,
		codigo, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists codigo barras: %w", err)
	}
	return exists, nil
}

// Update actualiza los datos editables del producto, incluido el stock.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, precio = $4, tipo = $5, stock = $6,
		    codigo_barras = $7, activo = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.Precio, p.Tipo, p.Stock, p.CodigoBarras, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock absoluto del producto (usado por el motor de movimientos).
func (r *ProductoRepo) UpdateStock(ctx context.Context, id int64, stock int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE productos SET stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List busca por nombre o código de barras (ILIKE), con paginación. Search vacío lista todo.
func (r *ProductoRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos`
	args := []any{}
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE nombre ILIKE $%d OR codigo_barras ILIKE $%d", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY nombre ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Tipo, &p.Stock,
			&p.CodigoBarras, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID. La FK de movimientos es RESTRICT: si el libro
// aún referencia al producto, se devuelve ErrProductoConMovimientos.
func (r *ProductoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductoConMovimientos
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductoRepo) scanOne(row pgx.Row, op string) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Tipo, &p.Stock,
		&p.CodigoBarras, &p.Activo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
