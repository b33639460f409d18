package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/application/inventory"
	"github.com/jhoicas/sistema-inventario/internal/domain"
)

// InventarioHandler expone las operaciones de stock: reingreso, venta y salida.
// Cada operación muta el stock y registra el asiento en la misma transacción.
type InventarioHandler struct {
	uc *inventory.StockUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *inventory.StockUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// Reingreso godoc
// @Summary      Reingreso de mercancía por código de barras
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperacionStockRequest  true  "codigo_barras, cantidad"
// @Success      200   {object}  inventory.ResultadoOperacion
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/reingreso [post]
func (h *InventarioHandler) Reingreso(c *fiber.Ctx) error {
	return h.operar(c, h.uc.Reingreso)
}

// Venta godoc
// @Summary      Venta por código de barras
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperacionStockRequest  true  "codigo_barras, cantidad"
// @Success      200   {object}  inventory.ResultadoOperacion
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/venta [post]
func (h *InventarioHandler) Venta(c *fiber.Ctx) error {
	return h.operar(c, h.uc.Venta)
}

// Salida godoc
// @Summary      Retiro manual de stock por código de barras
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperacionStockRequest  true  "codigo_barras, cantidad"
// @Success      200   {object}  inventory.ResultadoOperacion
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/salida [post]
func (h *InventarioHandler) Salida(c *fiber.Ctx) error {
	return h.operar(c, h.uc.Salida)
}

type operacionFn func(ctx context.Context, userID, codigoBarras string, cantidad int64) (*inventory.ResultadoOperacion, error)

func (h *InventarioHandler) operar(c *fiber.Ctx, fn operacionFn) error {
	var in dto.OperacionStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := fn(c.Context(), GetUserID(c), in.CodigoBarras, in.Cantidad)
	if err != nil {
		return operacionError(c, err)
	}
	return c.JSON(out)
}

// operacionError mapea los errores del motor de stock a códigos HTTP.
func operacionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo_barras y cantidad > 0 son requeridos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrProductoInactivo):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INACTIVE", Message: "el producto está inactivo"})
	case errors.Is(err, domain.ErrServicioSinStock):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SERVICE_NO_STOCK", Message: "los servicios no manejan stock"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
