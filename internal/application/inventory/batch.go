package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// EditBatch corrige cantidades de un lote ya completado. La celda destino se ajusta por
// la diferencia (nueva - anterior), nunca se reinicia a la nueva cantidad.
func (e *MovementEngine) EditBatch(ctx context.Context, in EditBatchInput) (*MovementResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return e.run(ctx, OpEditBatch, func(uow UnitOfWork, res *MovementResult) error {
		batch, err := lockBatch(ctx, uow, in.BatchID)
		if err != nil {
			return err
		}
		if batch.Status == entity.BatchStatusUndone {
			return &domain.InvalidStateError{Reason: "no se puede editar un lote revertido"}
		}
		txs, err := uow.Transactions.ListByBatchForUpdate(ctx, batch.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Transaction, len(txs))
		for _, tx := range txs {
			byID[tx.ID] = tx
		}

		targets := make([]*entity.Transaction, len(in.Lines))
		for i, line := range in.Lines {
			tx, ok := byID[line.TransactionID]
			if !ok {
				return domain.NewNotFoundError(domain.EntityTransaction, line.TransactionID)
			}
			if tx.IsUndone() {
				return &domain.InvalidStateError{Reason: "la transacción " + tx.ID + " ya fue revertida"}
			}
			targets[i] = tx
		}

		now := e.now()
		res.Stock = make([]*entity.StockRecord, len(in.Lines))
		res.Transactions = make([]*entity.Transaction, len(in.Lines))
		for _, i := range lockOrder(len(targets), func(i int) string { return targets[i].ItemID }) {
			tx, newQty := targets[i], in.Lines[i].NewQuantity
			delta := newQty - tx.Quantity

			var stock *entity.StockRecord
			if delta == 0 {
				stock, err = uow.Stock.Get(ctx, tx.ItemID, tx.ToLocationID())
			} else {
				stock, err = uow.Stock.Adjust(ctx, tx.ItemID, tx.ToLocationID(), delta)
			}
			if err != nil {
				return describeShortage(ctx, uow, err)
			}
			if err := uow.Transactions.UpdateQuantity(ctx, tx.ID, newQty); err != nil {
				return err
			}
			if err := uow.Transactions.MarkStatus(ctx, tx.ID, entity.TransactionStatusEdited, ""); err != nil {
				return err
			}
			tx.Quantity = newQty
			tx.Status = entity.TransactionStatusEdited
			tx.UpdatedAt = now
			res.Stock[i] = stock
			res.Transactions[i] = tx
		}

		if err := uow.Batches.UpdateStatus(ctx, batch.ID, entity.BatchStatusEdited); err != nil {
			return err
		}
		batch.Status = entity.BatchStatusEdited
		batch.UpdatedAt = now
		res.Batch = batch
		return nil
	})
}

// UndoBatch revierte todas las transacciones vigentes de un lote. Falla con InvalidState
// si parte del stock ya salió de la ubicación destino.
func (e *MovementEngine) UndoBatch(ctx context.Context, in UndoBatchInput) (*MovementResult, error) {
	if in.BatchID == "" {
		return nil, domain.NewValidationError("batch_id", "es requerido")
	}
	return e.run(ctx, OpUndoBatch, func(uow UnitOfWork, res *MovementResult) error {
		batch, err := lockBatch(ctx, uow, in.BatchID)
		if err != nil {
			return err
		}
		if batch.Status == entity.BatchStatusUndone {
			return &domain.AlreadyUndoneError{Entity: domain.EntityBatch, ID: batch.ID}
		}
		txs, err := uow.Transactions.ListByBatchForUpdate(ctx, batch.ID)
		if err != nil {
			return err
		}

		now := e.now()
		for _, i := range lockOrder(len(txs), func(i int) string { return txs[i].ItemID }) {
			tx := txs[i]
			if tx.IsUndone() {
				continue
			}
			stock, err := compensate(ctx, uow, tx)
			if err != nil {
				return err
			}
			if err := uow.Transactions.MarkStatus(ctx, tx.ID, entity.TransactionStatusUndone, in.Actor); err != nil {
				return err
			}
			tx.Status = entity.TransactionStatusUndone
			tx.UndoneBy = in.Actor
			tx.UpdatedAt = now
			res.Stock = append(res.Stock, stock...)
			res.Transactions = append(res.Transactions, tx)
		}

		if err := uow.Batches.UpdateStatus(ctx, batch.ID, entity.BatchStatusUndone); err != nil {
			return err
		}
		batch.Status = entity.BatchStatusUndone
		batch.UpdatedAt = now
		res.Batch = batch
		return nil
	})
}

func lockBatch(ctx context.Context, uow UnitOfWork, id string) (*entity.PutawayBatch, error) {
	batch, err := uow.Batches.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.NewNotFoundError(domain.EntityBatch, id)
	}
	return batch, nil
}
