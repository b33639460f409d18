package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto.
// Precio es obligatorio para tipo bien; Stock se ignora para servicios.
type CreateProductoRequest struct {
	Nombre       string           `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion  string           `json:"descripcion"`
	Precio       *decimal.Decimal `json:"precio"`
	Tipo         string           `json:"tipo" validate:"required,oneof=bien servicio"`
	Stock        int64            `json:"stock"`
	CodigoBarras string           `json:"codigo_barras" validate:"required,min=1,max=100"`
	Activo       *bool            `json:"activo"`
}

// UpdateProductoRequest entrada para editar un producto. Solo campos presentes se actualizan.
// Identidad e historial de movimientos son inmutables.
type UpdateProductoRequest struct {
	Nombre       *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion  *string          `json:"descripcion"`
	Precio       *decimal.Decimal `json:"precio"`
	Tipo         *string          `json:"tipo" validate:"omitempty,oneof=bien servicio"`
	Stock        *int64           `json:"stock"`
	CodigoBarras *string          `json:"codigo_barras" validate:"omitempty,min=1,max=100"`
	Activo       *bool            `json:"activo"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID           int64            `json:"id"`
	Nombre       string           `json:"nombre"`
	Descripcion  string           `json:"descripcion"`
	Precio       *decimal.Decimal `json:"precio"`
	Tipo         string           `json:"tipo"`
	Stock        int64            `json:"stock"`
	CodigoBarras string           `json:"codigo_barras"`
	Activo       bool             `json:"activo"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
