package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Remove retira cantidades de varias celdas desde sus propias ubicaciones.
// Cada línea se lee con bloqueo; si alguna no alcanza, falla la operación completa.
// Se registra una transacción REMOVE por línea.
func (e *MovementEngine) Remove(ctx context.Context, in RemoveInput) (*MovementResult, error) {
	if err := validateStockLines(in.Lines); err != nil {
		return nil, err
	}
	return e.run(ctx, OpRemove, func(uow UnitOfWork, res *MovementResult) error {
		res.Stock = make([]*entity.StockRecord, len(in.Lines))
		res.Transactions = make([]*entity.Transaction, len(in.Lines))
		for _, i := range lockOrder(len(in.Lines), func(i int) string { return in.Lines[i].StockRecordID }) {
			line := in.Lines[i]
			rec, err := requireStock(ctx, uow, line.StockRecordID)
			if err != nil {
				return err
			}
			if line.Quantity > rec.Quantity {
				return describeShortage(ctx, uow, shortage(rec, line.Quantity))
			}
			updated, err := uow.Stock.Adjust(ctx, rec.ItemID, rec.LocationID, -line.Quantity)
			if err != nil {
				return describeShortage(ctx, uow, err)
			}
			tx := e.newTransaction(rec.ItemID, entity.Removed{From: rec.LocationID}, line.Quantity, "", in.UserID)
			if err := uow.Transactions.Record(ctx, tx); err != nil {
				return err
			}
			res.Stock[i] = updated
			res.Transactions[i] = tx
		}
		return nil
	})
}
