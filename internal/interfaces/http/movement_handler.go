package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// MovementHandler expone las operaciones del motor de movimientos (protegido).
type MovementHandler struct {
	engine  *inventory.MovementEngine
	queries *usecase.StockQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *inventory.MovementEngine, queries *usecase.StockQueryUseCase) *MovementHandler {
	return &MovementHandler{engine: engine, queries: queries}
}

// Putaway godoc
// @Summary      Ubicar un item
// @Description  Suma la cantidad al item en la ubicación; crea la ubicación si no existe.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PutawayRequest  true  "item_id o barcode, location, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/putaway [post]
func (h *MovementHandler) Putaway(c *fiber.Ctx) error {
	var in dto.PutawayRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	itemID := in.ItemID
	if itemID == "" {
		item, err := h.queries.ResolveItemByBarcode(c.Context(), in.Barcode)
		if err != nil {
			return writeError(c, err)
		}
		itemID = item.ID
	}
	res, err := h.engine.Putaway(c.Context(), inventory.PutawayInput{
		ItemID:        itemID,
		LocationLabel: in.Location,
		Quantity:      in.Quantity,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newMovementResponse(res))
}

// PutawayBatch godoc
// @Summary      Ubicar un lote
// @Description  Varios items hacia la misma ubicación en una sola operación atómica.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PutawayBatchRequest  true  "location, items[]"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/putaway-batches [post]
func (h *MovementHandler) PutawayBatch(c *fiber.Ctx) error {
	var in dto.PutawayBatchRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	lines := make([]inventory.PutawayLine, 0, len(in.Items))
	for _, l := range in.Items {
		lines = append(lines, inventory.PutawayLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	res, err := h.engine.PutawayBatch(c.Context(), inventory.PutawayBatchInput{
		LocationLabel: in.Location,
		Lines:         lines,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newMovementResponse(res))
}

// Remove godoc
// @Summary      Retirar stock
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RemoveRequest  true  "items[] (stock_id, quantity)"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/remove [post]
func (h *MovementHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.engine.Remove(c.Context(), inventory.RemoveInput{
		Lines:  stockLines(in.Items),
		UserID: GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newMovementResponse(res))
}

// Move godoc
// @Summary      Trasladar stock entre ubicaciones
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MoveRequest  true  "from_location, to_location, items[]"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/move [post]
func (h *MovementHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.engine.Move(c.Context(), inventory.MoveInput{
		FromLabel: in.FromLocation,
		ToLabel:   in.ToLocation,
		Lines:     stockLines(in.Items),
		UserID:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newMovementResponse(res))
}

// UndoTransaction godoc
// @Summary      Revertir una transacción
// @Description  Aplica la compensación inversa y marca la transacción como UNDONE. Solo supervisor.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.MovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/undo [post]
func (h *MovementHandler) UndoTransaction(c *fiber.Ctx) error {
	res, err := h.engine.Undo(c.Context(), inventory.UndoInput{
		TransactionID: c.Params("id"),
		Actor:         GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(newMovementResponse(res))
}

func stockLines(items []dto.StockLineRequest) []inventory.StockLine {
	out := make([]inventory.StockLine, 0, len(items))
	for _, l := range items {
		out = append(out, inventory.StockLine{StockRecordID: l.StockID, Quantity: l.Quantity})
	}
	return out
}

func newMovementResponse(res *inventory.MovementResult) dto.MovementResponse {
	out := dto.MovementResponse{
		Stock:        make([]dto.StockResponse, 0, len(res.Stock)),
		Transactions: dto.NewTransactionResponses(res.Transactions),
	}
	for _, s := range res.Stock {
		out.Stock = append(out.Stock, dto.NewStockResponse(s))
	}
	if res.Batch != nil {
		b := dto.NewBatchResponse(res.Batch)
		out.Batch = &b
	}
	return out
}
