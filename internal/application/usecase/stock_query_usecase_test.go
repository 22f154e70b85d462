package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

type captureGenerator struct {
	got usecase.BatchReceipt
	err error
}

func (g *captureGenerator) GenerateBatchReceipt(_ context.Context, r usecase.BatchReceipt) ([]byte, error) {
	g.got = r
	return []byte("%PDF"), g.err
}

func setup(t *testing.T) (context.Context, *inventory.MovementEngine, *usecase.StockQueryUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddItem(entity.Item{ID: "x", SKU: "SKU-X", Name: "Cinta", Barcode: "111"})
	s.AddItem(entity.Item{ID: "y", SKU: "SKU-Y", Name: "Caja", Barcode: "222"})
	r := s.Repositories()
	q := usecase.NewStockQueryUseCase(r.Stock, r.Transactions, r.Batches, r.Locations, r.Items)
	return context.Background(), inventory.NewMovementEngine(s, nil, zerolog.Nop()), q, s
}

func TestAvailableAtLocation(t *testing.T) {
	ctx, engine, q, _ := setup(t)
	res, err := engine.Putaway(ctx, inventory.PutawayInput{ItemID: "x", LocationLabel: "A-01-01", Quantity: 2})
	require.NoError(t, err)
	_, err = engine.Putaway(ctx, inventory.PutawayInput{ItemID: "y", LocationLabel: "A-01-01", Quantity: 1})
	require.NoError(t, err)
	_, err = engine.Remove(ctx, inventory.RemoveInput{Lines: []inventory.StockLine{{StockRecordID: res.Stock[0].ID, Quantity: 2}}})
	require.NoError(t, err)

	views, err := q.AvailableAtLocation(ctx, "a-01-01")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "SKU-Y", views[0].SKU)
	assert.Equal(t, "Caja", views[0].ItemName)

	_, err = q.AvailableAtLocation(ctx, "A-1-1")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = q.AvailableAtLocation(ctx, "Z-09-09")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockForItemEHistorial(t *testing.T) {
	ctx, engine, q, _ := setup(t)
	for _, label := range []string{"A-01-01", "B-01-01", "C-01-01"} {
		_, err := engine.Putaway(ctx, inventory.PutawayInput{ItemID: "x", LocationLabel: label, Quantity: 1})
		require.NoError(t, err)
	}

	views, err := q.StockForItem(ctx, "x")
	require.NoError(t, err)
	assert.Len(t, views, 3)

	hist, err := q.ItemHistory(ctx, "x", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, hist.Page.Limit)
	assert.Len(t, hist.Items, 3)

	_, err = q.StockForItem(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = q.ItemHistory(ctx, "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveItemByBarcode(t *testing.T) {
	ctx, _, q, _ := setup(t)
	item, err := q.ResolveItemByBarcode(ctx, "222")
	require.NoError(t, err)
	assert.Equal(t, "y", item.ID)

	_, err = q.ResolveItemByBarcode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = q.ResolveItemByBarcode(ctx, "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBatchDetailYComprobante(t *testing.T) {
	ctx, engine, q, _ := setup(t)
	res, err := engine.PutawayBatch(ctx, inventory.PutawayBatchInput{
		LocationLabel: "D-02-03",
		Lines:         []inventory.PutawayLine{{ItemID: "y", Quantity: 4}, {ItemID: "x", Quantity: 6}},
		UserID:        "op-1",
	})
	require.NoError(t, err)

	detail, err := q.BatchDetail(ctx, res.Batch.ID)
	require.NoError(t, err)
	assert.Equal(t, "D-02-03", detail.Location)
	assert.Equal(t, string(entity.BatchStatusCompleted), detail.Batch.Status)
	assert.Len(t, detail.Transactions, 2)

	gen := &captureGenerator{}
	pdf, name, err := usecase.NewBatchReceiptUseCase(q, gen).Download(ctx, res.Batch.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	assert.Equal(t, "lote-"+res.Batch.ID+".pdf", name)
	assert.Equal(t, "D-02-03", gen.got.Location)
	assert.Equal(t, "op-1", gen.got.CreatedBy)
	require.Len(t, gen.got.Lines, 2)
	skus := []string{gen.got.Lines[0].SKU, gen.got.Lines[1].SKU}
	assert.ElementsMatch(t, []string{"SKU-X", "SKU-Y"}, skus)

	_, err = q.BatchDetail(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gen.err = errors.New("fuente no encontrada")
	_, _, err = usecase.NewBatchReceiptUseCase(q, gen).Download(ctx, res.Batch.ID)
	assert.Error(t, err)
}
