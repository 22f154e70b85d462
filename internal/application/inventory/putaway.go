package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Putaway ubica una cantidad de un item en una etiqueta, creando la ubicación si no existe.
// Suma el stock y registra una transacción ADD en la misma unidad de trabajo.
func (e *MovementEngine) Putaway(ctx context.Context, in PutawayInput) (*MovementResult, error) {
	label, err := in.validate()
	if err != nil {
		return nil, err
	}
	return e.run(ctx, OpPutaway, func(uow UnitOfWork, res *MovementResult) error {
		if _, err := requireItem(ctx, uow, in.ItemID); err != nil {
			return err
		}
		loc, err := uow.Locations.GetOrCreate(ctx, label)
		if err != nil {
			return err
		}
		stock, err := uow.Stock.Adjust(ctx, in.ItemID, loc.ID, in.Quantity)
		if err != nil {
			return err
		}
		tx := e.newTransaction(in.ItemID, entity.Added{To: loc.ID}, in.Quantity, "", in.UserID)
		if err := uow.Transactions.Record(ctx, tx); err != nil {
			return err
		}
		res.Stock = append(res.Stock, stock)
		res.Transactions = append(res.Transactions, tx)
		return nil
	})
}

// PutawayBatch ubica varios items en una misma ubicación bajo un PutawayBatch.
// Todas las líneas se aplican o ninguna: no existe ubicación parcial.
func (e *MovementEngine) PutawayBatch(ctx context.Context, in PutawayBatchInput) (*MovementResult, error) {
	label, err := in.validate()
	if err != nil {
		return nil, err
	}
	return e.run(ctx, OpPutawayBatch, func(uow UnitOfWork, res *MovementResult) error {
		loc, err := uow.Locations.GetOrCreate(ctx, label)
		if err != nil {
			return err
		}
		now := e.now()
		batch := &entity.PutawayBatch{
			ID:               e.newID(),
			TargetLocationID: loc.ID,
			Status:           entity.BatchStatusCompleted,
			CreatedBy:        in.UserID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := uow.Batches.Create(ctx, batch); err != nil {
			return err
		}

		res.Stock = make([]*entity.StockRecord, len(in.Lines))
		res.Transactions = make([]*entity.Transaction, len(in.Lines))
		for _, i := range lockOrder(len(in.Lines), func(i int) string { return in.Lines[i].ItemID }) {
			line := in.Lines[i]
			if _, err := requireItem(ctx, uow, line.ItemID); err != nil {
				return err
			}
			stock, err := uow.Stock.Adjust(ctx, line.ItemID, loc.ID, line.Quantity)
			if err != nil {
				return err
			}
			tx := e.newTransaction(line.ItemID, entity.Added{To: loc.ID}, line.Quantity, batch.ID, in.UserID)
			if err := uow.Transactions.Record(ctx, tx); err != nil {
				return err
			}
			res.Stock[i] = stock
			res.Transactions[i] = tx
		}
		res.Batch = batch
		return nil
	})
}

// lockOrder devuelve los índices ordenados por clave para que operaciones concurrentes
// de varias líneas bloqueen las filas siempre en el mismo orden.
func lockOrder(n int, key func(i int) string) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return key(idx[a]) < key(idx[b]) })
	return idx
}

// cellOrder clave de bloqueo de una celda (item, ubicación).
func cellOrder(itemID, locationID string) string {
	return itemID + "\x00" + locationID
}
