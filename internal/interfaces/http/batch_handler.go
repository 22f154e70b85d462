package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// BatchHandler consulta, comprobante, corrección y reversión de lotes de ubicación.
type BatchHandler struct {
	engine   *inventory.MovementEngine
	queries  *usecase.StockQueryUseCase
	receipts *usecase.BatchReceiptUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(engine *inventory.MovementEngine, queries *usecase.StockQueryUseCase, receipts *usecase.BatchReceiptUseCase) *BatchHandler {
	return &BatchHandler{engine: engine, queries: queries, receipts: receipts}
}

// Get godoc
// @Summary      Detalle de un lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/putaway-batches/{id} [get]
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	out, err := h.queries.BatchDetail(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de un lote
// @Tags         batches
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/putaway-batches/{id}/receipt [get]
func (h *BatchHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.Download(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Edit godoc
// @Summary      Corregir cantidades de un lote
// @Description  Ajusta cada celda por la diferencia entre la cantidad nueva y la registrada. Solo supervisor.
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del lote"
// @Param        body  body  dto.EditBatchRequest  true  "items[] (transaction_id, quantity)"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/putaway-batches/{id} [put]
func (h *BatchHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditBatchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	lines := make([]inventory.BatchEditLine, 0, len(in.Items))
	for _, l := range in.Items {
		lines = append(lines, inventory.BatchEditLine{TransactionID: l.TransactionID, NewQuantity: l.Quantity})
	}
	res, err := h.engine.EditBatch(c.Context(), inventory.EditBatchInput{
		BatchID: c.Params("id"),
		Lines:   lines,
		UserID:  GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newMovementResponse(res))
}

// Undo godoc
// @Summary      Revertir un lote completo
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/putaway-batches/{id}/undo [post]
func (h *BatchHandler) Undo(c *fiber.Ctx) error {
	res, err := h.engine.UndoBatch(c.Context(), inventory.UndoBatchInput{
		BatchID: c.Params("id"),
		Actor:   GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newMovementResponse(res))
}
