package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sistema-inventario/internal/domain"
	"github.com/jhoicas/sistema-inventario/internal/domain/entity"
	"github.com/jhoicas/sistema-inventario/internal/domain/repository"
)

// StockUseCase registra operaciones de stock (reingreso, venta, salida) de forma
// transaccional: bloqueo de fila (SELECT FOR UPDATE), actualización de stock y
// asiento en el libro de movimientos con Commit/Rollback.
type StockUseCase struct {
	txRunner TxRunner
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner) *StockUseCase {
	return &StockUseCase{txRunner: txRunner}
}

// ResultadoOperacion resume una operación de stock completada.
type ResultadoOperacion struct {
	ProductoID     int64
	ProductoNombre string
	Tipo           string
	Cantidad       int64
	StockActual    int64
}

// Reingreso suma cantidad al stock de un bien y registra un movimiento de ingreso.
// Falla con ErrServicioSinStock para servicios y ErrProductoInactivo para inactivos.
func (uc *StockUseCase) Reingreso(ctx context.Context, userID, codigoBarras string, cantidad int64) (*ResultadoOperacion, error) {
	return uc.operar(ctx, userID, codigoBarras, cantidad, entity.MovimientoIngreso)
}

// Venta descuenta stock de un bien (ErrInsufficientStock si no alcanza) o registra
// la venta de un servicio sin tocar stock. Guarda el precio del producto al momento
// de la venta en el movimiento.
func (uc *StockUseCase) Venta(ctx context.Context, userID, codigoBarras string, cantidad int64) (*ResultadoOperacion, error) {
	return uc.operar(ctx, userID, codigoBarras, cantidad, entity.MovimientoVenta)
}

// Salida descuenta stock por retiro manual. Los servicios no tienen stock que retirar.
func (uc *StockUseCase) Salida(ctx context.Context, userID, codigoBarras string, cantidad int64) (*ResultadoOperacion, error) {
	return uc.operar(ctx, userID, codigoBarras, cantidad, entity.MovimientoSalida)
}

// operar valida la entrada, abre la transacción y aplica la regla del tipo.
func (uc *StockUseCase) operar(ctx context.Context, userID, codigoBarras string, cantidad int64, tipo string) (*ResultadoOperacion, error) {
	if codigoBarras == "" || cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var res *ResultadoOperacion
	err := uc.txRunner.Run(ctx, func(
		productoRepo repository.ProductoRepository,
		movimientoRepo repository.MovimientoRepository,
	) error {
		// Bloquea la fila del producto para evitar que dos ventas concurrentes
		// lean el mismo stock y lo sobregiren entre ambas.
		producto, err := productoRepo.GetByCodigoBarrasForUpdate(ctx, codigoBarras)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}
		if !producto.Activo {
			return domain.ErrProductoInactivo
		}

		nuevoStock := producto.Stock
		precioVenta := decimal.Zero

		switch tipo {
		case entity.MovimientoIngreso:
			if producto.EsServicio() {
				return domain.ErrServicioSinStock
			}
			nuevoStock = producto.Stock + cantidad

		case entity.MovimientoVenta:
			precioVenta = producto.PrecioODefecto()
			if !producto.EsServicio() {
				if producto.Stock < cantidad {
					return domain.ErrInsufficientStock
				}
				nuevoStock = producto.Stock - cantidad
			}

		case entity.MovimientoSalida:
			if producto.EsServicio() {
				return domain.ErrServicioSinStock
			}
			if producto.Stock < cantidad {
				return domain.ErrInsufficientStock
			}
			nuevoStock = producto.Stock - cantidad

		default:
			return domain.ErrInvalidInput
		}

		if nuevoStock != producto.Stock {
			if err := productoRepo.UpdateStock(ctx, producto.ID, nuevoStock); err != nil {
				return err
			}
		}
		mov := &entity.Movimiento{
			ProductoID:          producto.ID,
			Tipo:                tipo,
			Cantidad:            cantidad,
			PrecioUnitarioVenta: precioVenta,
			Fecha:               time.Now(),
			CreatedBy:           userID,
		}
		if err := movimientoRepo.Create(ctx, mov); err != nil {
			return err
		}
		res = &ResultadoOperacion{
			ProductoID:     producto.ID,
			ProductoNombre: producto.Nombre,
			Tipo:           tipo,
			Cantidad:       cantidad,
			StockActual:    nuevoStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
