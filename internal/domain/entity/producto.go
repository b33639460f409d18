package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	TipoBien     = "bien"     // maneja stock físico
	TipoServicio = "servicio" // no maneja stock, venta ilimitada
)

// Producto representa un bien o servicio del catálogo.
// Stock solo tiene significado para TipoBien; un servicio siempre tiene Stock == 0.
// CodigoBarras es único a nivel global (índice UNIQUE en la tabla).
type Producto struct {
	ID           int64
	Nombre       string
	Descripcion  string
	Precio       decimal.NullDecimal // NULL permitido solo para servicios
	Tipo         string              // bien, servicio
	Stock        int64               // nunca negativo para bienes
	CodigoBarras string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EsServicio indica si el producto es de tipo servicio.
func (p *Producto) EsServicio() bool { return p.Tipo == TipoServicio }

// PrecioODefecto devuelve el precio, o cero si es NULL.
func (p *Producto) PrecioODefecto() decimal.Decimal {
	if p.Precio.Valid {
		return p.Precio.Decimal
	}
	return decimal.Zero
}
