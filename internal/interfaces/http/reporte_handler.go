package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sistema-inventario/internal/application/dto"
	"github.com/jhoicas/sistema-inventario/internal/application/reports"
	"github.com/jhoicas/sistema-inventario/internal/domain"
)

// ReporteHandler genera reportes PDF y agregados del libro de movimientos.
type ReporteHandler struct {
	uc *reports.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reports.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// PDF godoc
// @Summary      Descargar reporte PDF
// @Description  Tipos: diario, mensual, producto, ventas_dia, ventas_rango, ventas_producto
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        tipo          query  string  true   "Tipo de reporte"
// @Param        fecha         query  string  false  "yyyy-mm-dd (diario, mensual, ventas_dia)"
// @Param        fecha_inicio  query  string  false  "yyyy-mm-dd (rangos)"
// @Param        fecha_fin     query  string  false  "yyyy-mm-dd (rangos)"
// @Param        producto_id   query  int     false  "ID del producto (producto, ventas_producto)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/pdf [get]
func (h *ReporteHandler) PDF(c *fiber.Ctx) error {
	var in dto.ReporteRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	pdfBytes, filename, err := h.uc.GenerarPDF(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo o parámetros del reporte inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// Totales godoc
// @Summary      Totales de un período (unidades y dinero)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  true   "yyyy-mm-dd"
// @Param        fecha_fin     query  string  true   "yyyy-mm-dd"
// @Param        tipo          query  string  false  "Filtrar por tipo de movimiento"
// @Success      200  {object}  dto.TotalesPeriodoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/totales [get]
func (h *ReporteHandler) Totales(c *fiber.Ctx) error {
	desde, err := parseFechaQuery(c, "fecha_inicio")
	if err != nil || desde == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha_inicio yyyy-mm-dd es requerida"})
	}
	hasta, err := parseFechaQuery(c, "fecha_fin")
	if err != nil || hasta == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "fecha_fin yyyy-mm-dd es requerida"})
	}
	fin := hasta.Add(24*time.Hour - time.Nanosecond)

	out, err := h.uc.TotalesPeriodo(c.Context(), *desde, fin, c.Query("tipo"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango o tipo inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ValorInventario godoc
// @Summary      Valor total del inventario (Σ precio × stock)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValorInventarioResponse
// @Router       /api/reportes/valor-inventario [get]
func (h *ReporteHandler) ValorInventario(c *fiber.Ctx) error {
	out, err := h.uc.ValorInventario(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
