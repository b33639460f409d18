package repository

import (
	"context"

	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type ProductoRepository interface {
	Create(ctx context.Context, producto *entity.Producto) error
	GetByID(ctx context.Context, id int64) (*entity.Producto, error)
	GetByCodigoBarras(ctx context.Context, codigo string) (*entity.Producto, error)
	// GetByCodigoBarrasForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetByCodigoBarrasForUpdate(ctx context.Context, codigo string) (*entity.Producto, error)
	// ExistsCodigoBarras verifica unicidad del código, ignorando excludeID (0 = ninguno).
	ExistsCodigoBarras(ctx context.Context, codigo string, excludeID int64) (bool, error)
	Update(ctx context.Context, producto *entity.Producto) error
	// UpdateStock fija el stock absoluto del producto (usado por el motor de movimientos).
	UpdateStock(ctx context.Context, id int64, stock int64) error
	// List busca por nombre o código de barras (search vacío = todos), con paginación.
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Producto, error)
	Delete(ctx context.Context, id int64) error
}
