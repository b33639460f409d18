package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperacionStockRequest body común para reingreso, venta y salida.
type OperacionStockRequest struct {
	CodigoBarras string `json:"codigo_barras" validate:"required"`
	Cantidad     int64  `json:"cantidad" validate:"required,gt=0"`
}

// MovimientoResponse un asiento del libro de movimientos.
type MovimientoResponse struct {
	ID                  int64           `json:"id"`
	ProductoID          int64           `json:"producto_id"`
	ProductoNombre      string          `json:"producto_nombre"`
	ProductoCodigo      string          `json:"producto_codigo"`
	Tipo                string          `json:"tipo"`
	Cantidad            int64           `json:"cantidad"`
	PrecioUnitarioVenta decimal.Decimal `json:"precio_unitario_venta"`
	Fecha               time.Time       `json:"fecha"`
}

// MovimientoListResponse lista paginada del libro.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
