package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoNuevoProducto = "nuevo_producto" // alta de catálogo con stock inicial
	MovimientoIngreso       = "ingreso"        // reingreso de mercancía
	MovimientoVenta         = "venta"
	MovimientoSalida        = "salida" // retiro manual
)

// TipoMovimientoValido reporta si el tipo es uno de los conocidos.
func TipoMovimientoValido(tipo string) bool {
	switch tipo {
	case MovimientoNuevoProducto, MovimientoIngreso, MovimientoVenta, MovimientoSalida:
		return true
	}
	return false
}

// Movimiento es un asiento del libro de inventario. Inmutable después de creado,
// salvo eliminación por un administrador. Pertenece a exactamente un Producto.
type Movimiento struct {
	ID                  int64
	ProductoID          int64
	Tipo                string
	Cantidad            int64           // siempre positivo; el tipo determina el signo sobre el stock
	PrecioUnitarioVenta decimal.Decimal // precio del producto al momento de la venta; 0 en otros tipos
	Fecha               time.Time
	CreatedBy           string // UserID del operador, vacío para procesos internos

	// Datos del producto cargados por JOIN en listados y reportes.
	ProductoNombre string
	ProductoCodigo string
}

// TotalVenta devuelve Cantidad × PrecioUnitarioVenta.
func (m *Movimiento) TotalVenta() decimal.Decimal {
	return m.PrecioUnitarioVenta.Mul(decimal.NewFromInt(m.Cantidad))
}
