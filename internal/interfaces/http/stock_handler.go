package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/pkg/validator"
)

// StockHandler consultas de stock e historial para el flujo de escaneo.
type StockHandler struct {
	queries *usecase.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(queries *usecase.StockQueryUseCase) *StockHandler {
	return &StockHandler{queries: queries}
}

// AtLocation godoc
// @Summary      Stock disponible en una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        label  path  string  true  "Etiqueta de la ubicación (ej. A-01-02)"
// @Success      200    {array}   dto.StockViewResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/locations/{label}/stock [get]
func (h *StockHandler) AtLocation(c *fiber.Ctx) error {
	out, err := h.queries.AvailableAtLocation(c.Context(), c.Params("label"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ForItem godoc
// @Summary      Stock de un item en todas sus ubicaciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {array}   dto.StockViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [get]
func (h *StockHandler) ForItem(c *fiber.Ctx) error {
	out, err := h.queries.StockForItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de transacciones de un item
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del item"
// @Param        limit   query  int     false  "Máximo de registros (default 20, máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200     {object}  dto.TransactionListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/items/{id}/transactions [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	if errs := validator.ValidateStruct(&page); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida", Details: errs})
	}
	out, err := h.queries.ItemHistory(c.Context(), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByBarcode godoc
// @Summary      Resolver un item por código de barras
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "Código escaneado"
// @Success      200      {object}  dto.ItemResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/items/barcode/{barcode} [get]
func (h *StockHandler) ByBarcode(c *fiber.Ctx) error {
	item, err := h.queries.ResolveItemByBarcode(c.Context(), c.Params("barcode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}
