package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository         = (*itemRepo)(nil)
	_ repository.LocationRepository     = (*locationRepo)(nil)
	_ repository.PutawayBatchRepository = (*batchRepo)(nil)
)

type itemRepo struct{ v *view }

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	item, ok := r.v.st.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *itemRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Item, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	id, ok := r.v.st.barcodes[barcode]
	if !ok {
		return nil, nil
	}
	item := r.v.st.items[id]
	return &item, nil
}

type locationRepo struct{ v *view }

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	loc, ok := r.v.st.locations[id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (r *locationRepo) GetByLabel(_ context.Context, label string) (*entity.Location, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	parsed, err := entity.ParseLocationLabel(label)
	if err != nil {
		return nil, nil
	}
	id, ok := r.v.st.labels[parsed.String()]
	if !ok {
		return nil, nil
	}
	loc := r.v.st.locations[id]
	return &loc, nil
}

func (r *locationRepo) GetOrCreate(_ context.Context, label entity.LocationLabel) (*entity.Location, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	loc := r.v.getOrCreateLocation(label)
	return &loc, nil
}

func (v *view) getOrCreateLocation(label entity.LocationLabel) entity.Location {
	if id, ok := v.st.labels[label.String()]; ok {
		return v.st.locations[id]
	}
	loc := *entity.NewLocation(v.newID(), label, v.now())
	v.st.locations[loc.ID] = loc
	v.st.labels[loc.Label] = loc.ID
	return loc
}

type batchRepo struct{ v *view }

func (r *batchRepo) Create(_ context.Context, batch *entity.PutawayBatch) error {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	if _, dup := r.v.st.batches[batch.ID]; dup {
		return fmt.Errorf("lote duplicado: %s", batch.ID)
	}
	r.v.st.batches[batch.ID] = *batch
	return nil
}

func (r *batchRepo) GetByID(_ context.Context, id string) (*entity.PutawayBatch, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	b, ok := r.v.st.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *batchRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PutawayBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *batchRepo) UpdateStatus(_ context.Context, id string, status entity.BatchStatus) error {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	b, ok := r.v.st.batches[id]
	if !ok {
		return fmt.Errorf("lote %s no existe", id)
	}
	b.Status = status
	b.UpdatedAt = r.v.now()
	r.v.st.batches[id] = b
	return nil
}
