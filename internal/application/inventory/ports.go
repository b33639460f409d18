package inventory

import (
	"context"

	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la actualización de stock y el asiento del movimiento
// se confirmen juntos o se reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		movimientoRepo repository.MovimientoRepository,
	) error) error
}
