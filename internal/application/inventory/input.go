package inventory

import (
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// PutawayInput ubicación simple de un item.
type PutawayInput struct {
	ItemID        string
	LocationLabel string
	Quantity      int
	UserID        string
}

// PutawayLine línea de un lote de ubicación.
type PutawayLine struct {
	ItemID   string
	Quantity int
}

// PutawayBatchInput varios items hacia una misma ubicación.
type PutawayBatchInput struct {
	LocationLabel string
	Lines         []PutawayLine
	UserID        string
}

// StockLine cantidad a tomar de una celda existente.
type StockLine struct {
	StockRecordID string
	Quantity      int
}

// RemoveInput retiro de varias celdas desde sus propias ubicaciones.
type RemoveInput struct {
	Lines  []StockLine
	UserID string
}

// MoveInput traslado de varias celdas entre dos ubicaciones existentes.
type MoveInput struct {
	FromLabel string
	ToLabel   string
	Lines     []StockLine
	UserID    string
}

// UndoInput reversión compensatoria de una transacción.
type UndoInput struct {
	TransactionID string
	Actor         string
}

// BatchEditLine nueva cantidad para una transacción del lote.
type BatchEditLine struct {
	TransactionID string
	NewQuantity   int
}

// EditBatchInput corrección posterior de cantidades de un lote.
type EditBatchInput struct {
	BatchID string
	Lines   []BatchEditLine
	UserID  string
}

// UndoBatchInput reversión completa de un lote.
type UndoBatchInput struct {
	BatchID string
	Actor   string
}

// MovementResult estado resultante de una operación: celdas actualizadas y transacciones escritas.
type MovementResult struct {
	Stock        []*entity.StockRecord
	Transactions []*entity.Transaction
	Batch        *entity.PutawayBatch
}

func (in PutawayInput) validate() (entity.LocationLabel, error) {
	if in.ItemID == "" {
		return entity.LocationLabel{}, domain.NewValidationError("item_id", "es requerido")
	}
	if in.Quantity < 1 {
		return entity.LocationLabel{}, domain.NewValidationError("quantity", "debe ser mayor que cero")
	}
	return parseLabel("location", in.LocationLabel)
}

func (in PutawayBatchInput) validate() (entity.LocationLabel, error) {
	if len(in.Lines) == 0 {
		return entity.LocationLabel{}, domain.NewValidationError("items", "la lista de items está vacía")
	}
	for i, l := range in.Lines {
		if l.ItemID == "" {
			return entity.LocationLabel{}, domain.NewValidationError(fmt.Sprintf("items[%d].item_id", i), "es requerido")
		}
		if l.Quantity < 1 {
			return entity.LocationLabel{}, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
	}
	return parseLabel("location", in.LocationLabel)
}

func validateStockLines(lines []StockLine) error {
	if len(lines) == 0 {
		return domain.NewValidationError("items", "la lista de items está vacía")
	}
	for i, l := range lines {
		if l.StockRecordID == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].stock_id", i), "es requerido")
		}
		if l.Quantity < 1 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
	}
	return nil
}

func (in MoveInput) validate() (from, to entity.LocationLabel, err error) {
	if from, err = parseLabel("from_location", in.FromLabel); err != nil {
		return
	}
	if to, err = parseLabel("to_location", in.ToLabel); err != nil {
		return
	}
	if from == to {
		err = domain.NewValidationError("to_location", "origen y destino no pueden ser la misma ubicación")
		return
	}
	err = validateStockLines(in.Lines)
	return
}

func (in EditBatchInput) validate() error {
	if in.BatchID == "" {
		return domain.NewValidationError("batch_id", "es requerido")
	}
	if len(in.Lines) == 0 {
		return domain.NewValidationError("items", "la lista de items está vacía")
	}
	seen := make(map[string]struct{}, len(in.Lines))
	for i, l := range in.Lines {
		if l.TransactionID == "" {
			return domain.NewValidationError(fmt.Sprintf("items[%d].transaction_id", i), "es requerido")
		}
		if l.NewQuantity < 1 {
			return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "debe ser mayor que cero")
		}
		if _, dup := seen[l.TransactionID]; dup {
			return domain.NewValidationError(fmt.Sprintf("items[%d].transaction_id", i), "transacción repetida")
		}
		seen[l.TransactionID] = struct{}{}
	}
	return nil
}

func parseLabel(field, raw string) (entity.LocationLabel, error) {
	label, err := entity.ParseLocationLabel(raw)
	if err != nil {
		return entity.LocationLabel{}, domain.NewValidationError(field, err.Error())
	}
	return label, nil
}
