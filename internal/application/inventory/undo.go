package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Undo revierte una transacción aplicando los deltas compensatorios: el origen recupera
// la cantidad y el destino la devuelve. La transacción queda en el log como UNDONE.
func (e *MovementEngine) Undo(ctx context.Context, in UndoInput) (*MovementResult, error) {
	if in.TransactionID == "" {
		return nil, domain.NewValidationError("transaction_id", "es requerido")
	}
	return e.run(ctx, OpUndo, func(uow UnitOfWork, res *MovementResult) error {
		tx, err := uow.Transactions.GetByIDForUpdate(ctx, in.TransactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.NewNotFoundError(domain.EntityTransaction, in.TransactionID)
		}
		if tx.IsUndone() {
			return &domain.AlreadyUndoneError{Entity: domain.EntityTransaction, ID: tx.ID}
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
		tx.UpdatedAt = e.now()
		res.Stock = stock
		res.Transactions = []*entity.Transaction{tx}
		return nil
	})
}

// compensate aplica Compensation() de tx. Exige que exista la celda de cada ubicación tocada
// y traduce un faltante a InvalidState: el stock ya salió por otro movimiento.
func compensate(ctx context.Context, uow UnitOfWork, tx *entity.Transaction) ([]*entity.StockRecord, error) {
	deltas := tx.Compensation()
	sort.SliceStable(deltas, func(a, b int) bool { return deltas[a].LocationID < deltas[b].LocationID })

	out := make([]*entity.StockRecord, 0, len(deltas))
	for _, d := range deltas {
		rec, err := uow.Stock.Get(ctx, tx.ItemID, d.LocationID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, &domain.InvalidStateError{
				Reason: fmt.Sprintf("no existe registro de stock del item %s en la ubicación %s", tx.ItemID, d.LocationID),
			}
		}
		updated, err := uow.Stock.Adjust(ctx, tx.ItemID, d.LocationID, d.Delta)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return nil, &domain.InvalidStateError{
					Reason: fmt.Sprintf("revertir la transacción %s dejaría stock negativo", tx.ID),
					Cause:  describeShortage(ctx, uow, err),
				}
			}
			return nil, err
		}
		out = append(out, updated)
	}
	return out, nil
}
