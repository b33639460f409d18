package repository

import (
	"context"
	"time"

	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
)

// MovimientoFilter criterios de búsqueda para el libro de movimientos.
// Los campos cero se ignoran.
type MovimientoFilter struct {
	Search      string // nombre o código de barras del producto
	FechaInicio *time.Time
	FechaFin    *time.Time
	Tipo        string // entity.Movimiento*
	ProductoID  int64
	Limit       int
	Offset      int
}

// MovimientoRepository define el puerto de persistencia para el libro de movimientos.
type MovimientoRepository interface {
	Create(ctx context.Context, movimiento *entity.Movimiento) error
	GetByID(ctx context.Context, id int64) (*entity.Movimiento, error)
	// List devuelve movimientos con los datos del producto (JOIN), más recientes primero.
	List(ctx context.Context, filter MovimientoFilter) ([]*entity.Movimiento, error)
	// ListForReport ordena ascendente por fecha (orden de impresión de reportes).
	ListForReport(ctx context.Context, filter MovimientoFilter) ([]*entity.Movimiento, error)
	CountByProducto(ctx context.Context, productoID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	// DeleteByProducto elimina todos los movimientos del producto y devuelve cuántos eran.
	DeleteByProducto(ctx context.Context, productoID int64) (int64, error)
}
