package inventory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

const (
	itemX    = "item-x"
	itemY    = "item-y"
	operador = "user-operador"
	superv   = "user-supervisor"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []inventory.StockChangedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evs []inventory.StockChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evs...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type fixture struct {
	ctx    context.Context
	store  *memory.Store
	engine *inventory.MovementEngine
	pub    *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddItem(entity.Item{ID: itemX, SKU: "SKU-X", Name: "Item X", Barcode: "000X"})
	store.AddItem(entity.Item{ID: itemY, SKU: "SKU-Y", Name: "Item Y", Barcode: "000Y"})
	pub := &recordingPublisher{}
	return &fixture{
		ctx:    context.Background(),
		store:  store,
		engine: inventory.NewMovementEngine(store, pub, zerolog.Nop()),
		pub:    pub,
	}
}

func (f *fixture) location(t *testing.T, label string) *entity.Location {
	t.Helper()
	loc, err := f.store.Repositories().Locations.GetByLabel(f.ctx, label)
	require.NoError(t, err)
	return loc
}

// qty cantidad actual de (item, etiqueta); -1 si la celda no existe.
func (f *fixture) qty(t *testing.T, itemID, label string) int {
	t.Helper()
	loc := f.location(t, label)
	if loc == nil {
		return -1
	}
	rec, err := f.store.Repositories().Stock.Get(f.ctx, itemID, loc.ID)
	require.NoError(t, err)
	if rec == nil {
		return -1
	}
	return rec.Quantity
}

func (f *fixture) history(t *testing.T, itemID string) []*entity.Transaction {
	t.Helper()
	txs, err := f.store.Repositories().Transactions.ListByItem(f.ctx, itemID, 0, 0)
	require.NoError(t, err)
	return txs
}

func (f *fixture) putaway(t *testing.T, itemID, label string, qty int) *inventory.MovementResult {
	t.Helper()
	res, err := f.engine.Putaway(f.ctx, inventory.PutawayInput{ItemID: itemID, LocationLabel: label, Quantity: qty, UserID: operador})
	require.NoError(t, err)
	return res
}

func TestEscenario_PutawayMoveRemoveUndo(t *testing.T) {
	f := newFixture(t)

	// 1. Putaway a una ubicación nueva
	res := f.putaway(t, itemX, "A-01-01", 10)
	assert.Equal(t, 10, f.qty(t, itemX, "A-01-01"))
	require.Len(t, res.Transactions, 1)
	add := res.Transactions[0]
	assert.Equal(t, entity.TransactionTypeAdd, add.Type())
	assert.Equal(t, 10, add.Quantity)
	assert.Equal(t, entity.TransactionStatusActive, add.Status)
	stockX := res.Stock[0].ID

	// 2. Move 4 hacia A-01-02 (ambas ubicaciones deben existir)
	f.store.AddLocation(entity.LocationLabel{Aisle: "A", Bay: 1, Height: 2})
	moved, err := f.engine.Move(f.ctx, inventory.MoveInput{
		FromLabel: "A-01-01", ToLabel: "A-01-02",
		Lines:  []inventory.StockLine{{StockRecordID: stockX, Quantity: 4}},
		UserID: operador,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, f.qty(t, itemX, "A-01-01"))
	assert.Equal(t, 4, f.qty(t, itemX, "A-01-02"))
	require.Len(t, moved.Transactions, 1)
	move := moved.Transactions[0]
	assert.Equal(t, entity.TransactionTypeMove, move.Type())

	// 3. Remove 7 desde A-01-02 (hay 4) falla sin tocar nada
	dst := moved.Stock[1]
	before := len(f.history(t, itemX))
	_, err = f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines:  []inventory.StockLine{{StockRecordID: dst.ID, Quantity: 7}},
		UserID: operador,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 4, short.Available)
	assert.Equal(t, 7, short.Requested)
	assert.Equal(t, "SKU-X", short.SKU)
	assert.Equal(t, "A-01-02", short.Location)
	assert.Equal(t, 6, f.qty(t, itemX, "A-01-01"))
	assert.Equal(t, 4, f.qty(t, itemX, "A-01-02"))
	assert.Len(t, f.history(t, itemX), before)

	// 4. Undo del Move
	undone, err := f.engine.Undo(f.ctx, inventory.UndoInput{TransactionID: move.ID, Actor: superv})
	require.NoError(t, err)
	assert.Equal(t, 10, f.qty(t, itemX, "A-01-01"))
	assert.Equal(t, 0, f.qty(t, itemX, "A-01-02"))
	assert.Equal(t, entity.TransactionStatusUndone, undone.Transactions[0].Status)

	stored, err := f.store.Repositories().Transactions.GetByID(f.ctx, move.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusUndone, stored.Status)
	assert.Equal(t, superv, stored.UndoneBy)
}

func TestEscenario_EditarYRevertirLote(t *testing.T) {
	f := newFixture(t)

	// 5. Lote {X:5, Y:3} y edición de X a 2
	res, err := f.engine.PutawayBatch(f.ctx, inventory.PutawayBatchInput{
		LocationLabel: "B-02-01",
		Lines:         []inventory.PutawayLine{{ItemID: itemX, Quantity: 5}, {ItemID: itemY, Quantity: 3}},
		UserID:        operador,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Batch)
	assert.Equal(t, entity.BatchStatusCompleted, res.Batch.Status)
	require.Len(t, res.Transactions, 2)
	txX := res.Transactions[0]
	assert.Equal(t, itemX, txX.ItemID)
	assert.Equal(t, res.Batch.ID, txX.BatchID)

	edited, err := f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: res.Batch.ID,
		Lines:   []inventory.BatchEditLine{{TransactionID: txX.ID, NewQuantity: 2}},
		UserID:  superv,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.qty(t, itemX, "B-02-01"))
	assert.Equal(t, 3, f.qty(t, itemY, "B-02-01"))
	assert.Equal(t, entity.BatchStatusEdited, edited.Batch.Status)
	assert.Equal(t, entity.TransactionStatusEdited, edited.Transactions[0].Status)
	assert.Equal(t, 2, edited.Transactions[0].Quantity)

	// 6. Si X ya salió de B-02-01 el undo del lote falla sin cambios
	f.store.AddLocation(entity.LocationLabel{Aisle: "C", Bay: 1, Height: 1})
	_, err = f.engine.Move(f.ctx, inventory.MoveInput{
		FromLabel: "B-02-01", ToLabel: "C-01-01",
		Lines:  []inventory.StockLine{{StockRecordID: res.Stock[0].ID, Quantity: 1}},
		UserID: operador,
	})
	require.NoError(t, err)

	_, err = f.engine.UndoBatch(f.ctx, inventory.UndoBatchInput{BatchID: res.Batch.ID, Actor: superv})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, f.qty(t, itemX, "B-02-01"))
	assert.Equal(t, 3, f.qty(t, itemY, "B-02-01"))
	batch, err := f.store.Repositories().Batches.GetByID(f.ctx, res.Batch.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusEdited, batch.Status)

	// al devolver la unidad el undo procede
	_, err = f.engine.Move(f.ctx, inventory.MoveInput{
		FromLabel: "C-01-01", ToLabel: "B-02-01",
		Lines:  []inventory.StockLine{{StockRecordID: stockID(t, f, itemX, "C-01-01"), Quantity: 1}},
		UserID: operador,
	})
	require.NoError(t, err)

	undone, err := f.engine.UndoBatch(f.ctx, inventory.UndoBatchInput{BatchID: res.Batch.ID, Actor: superv})
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusUndone, undone.Batch.Status)
	assert.Equal(t, 0, f.qty(t, itemX, "B-02-01"))
	assert.Equal(t, 0, f.qty(t, itemY, "B-02-01"))
	for _, tx := range undone.Transactions {
		assert.Equal(t, entity.TransactionStatusUndone, tx.Status)
		assert.Equal(t, superv, tx.UndoneBy)
	}

	_, err = f.engine.UndoBatch(f.ctx, inventory.UndoBatchInput{BatchID: res.Batch.ID, Actor: superv})
	assert.ErrorIs(t, err, domain.ErrAlreadyUndone)

	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: res.Batch.ID,
		Lines:   []inventory.BatchEditLine{{TransactionID: txX.ID, NewQuantity: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func stockID(t *testing.T, f *fixture, itemID, label string) string {
	t.Helper()
	rec, err := f.store.Repositories().Stock.Get(f.ctx, itemID, f.location(t, label).ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.ID
}

func TestPutaway_Rechazos(t *testing.T) {
	cases := []struct {
		name string
		in   inventory.PutawayInput
		want error
	}{
		{"sin item", inventory.PutawayInput{LocationLabel: "A-01-01", Quantity: 1}, domain.ErrValidation},
		{"cantidad cero", inventory.PutawayInput{ItemID: itemX, LocationLabel: "A-01-01"}, domain.ErrValidation},
		{"cantidad negativa", inventory.PutawayInput{ItemID: itemX, LocationLabel: "A-01-01", Quantity: -2}, domain.ErrValidation},
		{"etiqueta inválida", inventory.PutawayInput{ItemID: itemX, LocationLabel: "A01-01", Quantity: 1}, domain.ErrValidation},
		{"item inexistente", inventory.PutawayInput{ItemID: "nope", LocationLabel: "A-01-01", Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.engine.Putaway(f.ctx, tc.in)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, f.location(t, "A-01-01"), "no debe quedar la ubicación creada")
			assert.Zero(t, f.pub.count())
		})
	}
}

func TestPutaway_NormalizaEtiquetaYAcumula(t *testing.T) {
	f := newFixture(t)
	f.putaway(t, itemX, "a-01-01", 3)
	f.putaway(t, itemX, " A-01-01 ", 4)
	assert.Equal(t, 7, f.qty(t, itemX, "A-01-01"))
	assert.Len(t, f.history(t, itemX), 2)
}

func TestPutawayBatch_AtomicoSiUnaLineaFalla(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.PutawayBatch(f.ctx, inventory.PutawayBatchInput{
		LocationLabel: "D-04-02",
		Lines:         []inventory.PutawayLine{{ItemID: itemX, Quantity: 5}, {ItemID: "fantasma", Quantity: 1}},
		UserID:        operador,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, f.location(t, "D-04-02"))
	assert.Empty(t, f.history(t, itemX))
	assert.Zero(t, f.pub.count())
}

func TestRemove_MultiLineaTodoONada(t *testing.T) {
	f := newFixture(t)
	x := f.putaway(t, itemX, "A-01-01", 5).Stock[0]
	y := f.putaway(t, itemY, "A-01-01", 2).Stock[0]

	_, err := f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines:  []inventory.StockLine{{StockRecordID: x.ID, Quantity: 5}, {StockRecordID: y.ID, Quantity: 3}},
		UserID: operador,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.qty(t, itemX, "A-01-01"))
	assert.Equal(t, 2, f.qty(t, itemY, "A-01-01"))

	res, err := f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines:  []inventory.StockLine{{StockRecordID: y.ID, Quantity: 2}, {StockRecordID: x.ID, Quantity: 1}},
		UserID: operador,
	})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	assert.Equal(t, itemY, res.Transactions[0].ItemID)
	assert.Equal(t, entity.TransactionTypeRemove, res.Transactions[0].Type())
	assert.Equal(t, 0, res.Stock[0].Quantity)
	assert.Equal(t, 4, res.Stock[1].Quantity)

	// la celda en cero sigue existiendo pero no aparece como disponible
	views, err := f.store.Repositories().Stock.ListByLocation(f.ctx, f.location(t, "A-01-01").ID, true)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "SKU-X", views[0].SKU)
	assert.Equal(t, 0, f.qty(t, itemY, "A-01-01"))
}

func TestRemove_Rechazos(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Remove(f.ctx, inventory.RemoveInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.engine.Remove(f.ctx, inventory.RemoveInput{Lines: []inventory.StockLine{{StockRecordID: "nope", Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMove_Rechazos(t *testing.T) {
	f := newFixture(t)
	x := f.putaway(t, itemX, "A-01-01", 5).Stock[0]
	f.putaway(t, itemY, "A-01-02", 1)

	t.Run("misma ubicación", func(t *testing.T) {
		_, err := f.engine.Move(f.ctx, inventory.MoveInput{
			FromLabel: "A-01-01", ToLabel: "a-01-01",
			Lines: []inventory.StockLine{{StockRecordID: x.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
	t.Run("destino inexistente", func(t *testing.T) {
		_, err := f.engine.Move(f.ctx, inventory.MoveInput{
			FromLabel: "A-01-01", ToLabel: "Z-09-09",
			Lines: []inventory.StockLine{{StockRecordID: x.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, f.location(t, "Z-09-09"))
	})
	t.Run("celda fuera del origen", func(t *testing.T) {
		_, err := f.engine.Move(f.ctx, inventory.MoveInput{
			FromLabel: "A-01-02", ToLabel: "A-01-01",
			Lines: []inventory.StockLine{{StockRecordID: x.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("cantidad mayor a la disponible", func(t *testing.T) {
		_, err := f.engine.Move(f.ctx, inventory.MoveInput{
			FromLabel: "A-01-01", ToLabel: "A-01-02",
			Lines: []inventory.StockLine{{StockRecordID: x.ID, Quantity: 6}},
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})
	assert.Equal(t, 5, f.qty(t, itemX, "A-01-01"))
	assert.Equal(t, -1, f.qty(t, itemX, "A-01-02"))
}

func TestUndo_DosVecesFallaSinEfecto(t *testing.T) {
	f := newFixture(t)
	tx := f.putaway(t, itemX, "A-01-01", 3).Transactions[0]

	_, err := f.engine.Undo(f.ctx, inventory.UndoInput{TransactionID: tx.ID, Actor: superv})
	require.NoError(t, err)
	assert.Equal(t, 0, f.qty(t, itemX, "A-01-01"))

	_, err = f.engine.Undo(f.ctx, inventory.UndoInput{TransactionID: tx.ID, Actor: superv})
	require.ErrorIs(t, err, domain.ErrAlreadyUndone)
	assert.Equal(t, 0, f.qty(t, itemX, "A-01-01"))

	_, err = f.engine.Undo(f.ctx, inventory.UndoInput{TransactionID: "no-existe", Actor: superv})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.engine.Undo(f.ctx, inventory.UndoInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUndo_PutawayYaConsumidoEsEstadoInvalido(t *testing.T) {
	f := newFixture(t)
	res := f.putaway(t, itemX, "A-01-01", 3)
	_, err := f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines: []inventory.StockLine{{StockRecordID: res.Stock[0].ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.engine.Undo(f.ctx, inventory.UndoInput{TransactionID: res.Transactions[0].ID, Actor: superv})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 1, f.qty(t, itemX, "A-01-01"))

	stored, err := f.store.Repositories().Transactions.GetByID(f.ctx, res.Transactions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusActive, stored.Status)
}

func TestUndo_RemoveDevuelveStock(t *testing.T) {
	f := newFixture(t)
	rec := f.putaway(t, itemX, "A-01-01", 8).Stock[0]
	removed, err := f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines: []inventory.StockLine{{StockRecordID: rec.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = f.engine.Undo(f.ctx, inventory.UndoInput{TransactionID: removed.Transactions[0].ID, Actor: superv})
	require.NoError(t, err)
	assert.Equal(t, 8, f.qty(t, itemX, "A-01-01"))
}

func TestEditBatch_AumentoYRechazos(t *testing.T) {
	f := newFixture(t)
	res, err := f.engine.PutawayBatch(f.ctx, inventory.PutawayBatchInput{
		LocationLabel: "B-01-01",
		Lines:         []inventory.PutawayLine{{ItemID: itemX, Quantity: 4}},
	})
	require.NoError(t, err)
	other := f.putaway(t, itemY, "B-01-01", 1).Transactions[0]
	batchID := res.Batch.ID
	txX := res.Transactions[0]

	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: batchID,
		Lines:   []inventory.BatchEditLine{{TransactionID: txX.ID, NewQuantity: 9}},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, f.qty(t, itemX, "B-01-01"))

	// misma cantidad: sin delta
	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: batchID,
		Lines:   []inventory.BatchEditLine{{TransactionID: txX.ID, NewQuantity: 9}},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, f.qty(t, itemX, "B-01-01"))

	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: batchID,
		Lines:   []inventory.BatchEditLine{{TransactionID: other.ID, NewQuantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: "no-existe",
		Lines:   []inventory.BatchEditLine{{TransactionID: txX.ID, NewQuantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: batchID,
		Lines: []inventory.BatchEditLine{
			{TransactionID: txX.ID, NewQuantity: 2},
			{TransactionID: txX.ID, NewQuantity: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// bajar por debajo de lo que queda físicamente en la ubicación
	_, err = f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines: []inventory.StockLine{{StockRecordID: res.Stock[0].ID, Quantity: 8}},
	})
	require.NoError(t, err)
	_, err = f.engine.EditBatch(f.ctx, inventory.EditBatchInput{
		BatchID: batchID,
		Lines:   []inventory.BatchEditLine{{TransactionID: txX.ID, NewQuantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, f.qty(t, itemX, "B-01-01"))
}

func TestPublish_SoloTrasCommit(t *testing.T) {
	f := newFixture(t)
	res := f.putaway(t, itemX, "A-01-01", 2)
	require.Equal(t, 1, f.pub.count())
	ev := f.pub.events[0]
	assert.Equal(t, inventory.OpPutaway, ev.Operation)
	assert.Equal(t, itemX, ev.ItemID)
	assert.Equal(t, 2, ev.Quantity)
	assert.Equal(t, res.Transactions[0].ID, ev.TransactionID)

	_, err := f.engine.Remove(f.ctx, inventory.RemoveInput{
		Lines: []inventory.StockLine{{StockRecordID: res.Stock[0].ID, Quantity: 3}},
	})
	require.Error(t, err)
	assert.Equal(t, 1, f.pub.count())
}

func TestPublish_FalloNoInvalidaLaOperacion(t *testing.T) {
	store := memory.NewStore()
	store.AddItem(entity.Item{ID: itemX, SKU: "SKU-X"})
	engine := inventory.NewMovementEngine(store, failingPublisher{}, zerolog.Nop())

	res, err := engine.Putaway(context.Background(), inventory.PutawayInput{ItemID: itemX, LocationLabel: "A-01-01", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stock[0].Quantity)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, []inventory.StockChangedEvent) error {
	return errors.New("broker caído")
}

func TestConcurrencia_RemoveNuncaDejaNegativos(t *testing.T) {
	f := newFixture(t)
	rec := f.putaway(t, itemX, "A-01-01", 100).Stock[0]

	var ok, short atomic.Int32
	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := f.engine.Remove(f.ctx, inventory.RemoveInput{
				Lines: []inventory.StockLine{{StockRecordID: rec.ID, Quantity: 3}},
			})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				short.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(33), ok.Load())
	assert.Equal(t, int32(17), short.Load())
	assert.Equal(t, 1, f.qty(t, itemX, "A-01-01"))
	assert.Len(t, f.history(t, itemX), 34)
}

func TestConcurrencia_MoveConservaElTotal(t *testing.T) {
	f := newFixture(t)
	a := f.putaway(t, itemX, "A-01-01", 40).Stock[0]
	b := f.putaway(t, itemX, "A-01-02", 40).Stock[0]

	var g errgroup.Group
	for i := 0; i < 40; i++ {
		from, to, id := "A-01-01", "A-01-02", a.ID
		if i%2 == 1 {
			from, to, id = to, from, b.ID
		}
		g.Go(func() error {
			_, err := f.engine.Move(f.ctx, inventory.MoveInput{
				FromLabel: from, ToLabel: to,
				Lines: []inventory.StockLine{{StockRecordID: id, Quantity: 5}},
			})
			if err != nil && !errors.Is(err, domain.ErrInsufficientStock) {
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	total := f.qty(t, itemX, "A-01-01") + f.qty(t, itemX, "A-01-02")
	assert.Equal(t, 80, total)
	assert.GreaterOrEqual(t, f.qty(t, itemX, "A-01-01"), 0)
	assert.GreaterOrEqual(t, f.qty(t, itemX, "A-01-02"), 0)
}

func TestContextoCancelado(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.engine.Putaway(ctx, inventory.PutawayInput{ItemID: itemX, LocationLabel: "A-01-01", Quantity: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, f.location(t, "A-01-01"))
}
