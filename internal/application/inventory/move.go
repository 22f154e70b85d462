package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// moveStep un ajuste de celda dentro de un Move: origen (-) o destino (+) de una línea.
type moveStep struct {
	line       int
	itemID     string
	locationID string
	delta      int
}

// Move traslada cantidades entre dos ubicaciones existentes.
// Ambas ubicaciones deben existir; la celda destino se crea si hace falta.
// La suma origen+destino por item se conserva.
func (e *MovementEngine) Move(ctx context.Context, in MoveInput) (*MovementResult, error) {
	fromLabel, toLabel, err := in.validate()
	if err != nil {
		return nil, err
	}
	return e.run(ctx, OpMove, func(uow UnitOfWork, res *MovementResult) error {
		from, err := requireLocation(ctx, uow, fromLabel)
		if err != nil {
			return err
		}
		to, err := requireLocation(ctx, uow, toLabel)
		if err != nil {
			return err
		}

		// item y ubicación de una celda no cambian: basta leerla sin bloqueo.
		recs := make([]*entity.StockRecord, len(in.Lines))
		for i, line := range in.Lines {
			rec, err := uow.Stock.GetByID(ctx, line.StockRecordID)
			if err != nil {
				return err
			}
			if rec == nil {
				return domain.NewNotFoundError(domain.EntityStock, line.StockRecordID)
			}
			if rec.LocationID != from.ID {
				return domain.NewNotFoundError(domain.EntityStock, line.StockRecordID+"@"+from.Label)
			}
			recs[i] = rec
		}

		// Origen y destino se ajustan en orden global (item, ubicación): dos Move opuestos
		// del mismo item toman los bloqueos en la misma secuencia.
		steps := make([]moveStep, 0, 2*len(in.Lines))
		for i, line := range in.Lines {
			steps = append(steps,
				moveStep{line: i, itemID: recs[i].ItemID, locationID: from.ID, delta: -line.Quantity},
				moveStep{line: i, itemID: recs[i].ItemID, locationID: to.ID, delta: line.Quantity},
			)
		}
		sort.SliceStable(steps, func(a, b int) bool {
			return cellOrder(steps[a].itemID, steps[a].locationID) < cellOrder(steps[b].itemID, steps[b].locationID)
		})

		sources := make([]*entity.StockRecord, len(in.Lines))
		dests := make([]*entity.StockRecord, len(in.Lines))
		for _, s := range steps {
			rec, err := uow.Stock.Adjust(ctx, s.itemID, s.locationID, s.delta)
			if err != nil {
				return describeShortage(ctx, uow, err)
			}
			if s.delta < 0 {
				sources[s.line] = rec
			} else {
				dests[s.line] = rec
			}
		}

		res.Stock = make([]*entity.StockRecord, 0, 2*len(in.Lines))
		res.Transactions = make([]*entity.Transaction, len(in.Lines))
		for i, line := range in.Lines {
			tx := e.newTransaction(recs[i].ItemID, entity.Moved{From: from.ID, To: to.ID}, line.Quantity, "", in.UserID)
			if err := uow.Transactions.Record(ctx, tx); err != nil {
				return err
			}
			res.Transactions[i] = tx
			res.Stock = append(res.Stock, sources[i], dests[i])
		}
		return nil
	})
}
