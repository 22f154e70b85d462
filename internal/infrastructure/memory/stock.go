package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.StockRepository = (*stockRepo)(nil)

type stockRepo struct{ v *view }

func (r *stockRepo) Get(_ context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	id, ok := r.v.st.cells[cellKey{itemID, locationID}]
	if !ok {
		return nil, nil
	}
	rec := r.v.st.stock[id]
	return &rec, nil
}

func (r *stockRepo) GetByID(_ context.Context, id string) (*entity.StockRecord, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	rec, ok := r.v.st.stock[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// GetByIDForUpdate equivale a GetByID: Run ya serializa las unidades de trabajo.
func (r *stockRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *stockRepo) Adjust(_ context.Context, itemID, locationID string, delta int) (*entity.StockRecord, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	key := cellKey{itemID, locationID}
	id, ok := r.v.st.cells[key]
	if !ok {
		if delta < 0 {
			return nil, &domain.InsufficientStockError{
				ItemID: itemID, LocationID: locationID, Available: 0, Requested: -delta,
			}
		}
		rec := entity.StockRecord{
			ID:         r.v.newID(),
			ItemID:     itemID,
			LocationID: locationID,
			Quantity:   delta,
			UpdatedAt:  r.v.now(),
		}
		r.v.st.stock[rec.ID] = rec
		r.v.st.cells[key] = rec.ID
		return &rec, nil
	}
	rec := r.v.st.stock[id]
	if rec.Quantity+delta < 0 {
		return nil, &domain.InsufficientStockError{
			ItemID: itemID, LocationID: locationID, Available: rec.Quantity, Requested: -delta,
		}
	}
	rec.Quantity += delta
	rec.UpdatedAt = r.v.now()
	r.v.st.stock[id] = rec
	return &rec, nil
}

func (r *stockRepo) ListByLocation(_ context.Context, locationID string, onlyAvailable bool) ([]*entity.StockView, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	return r.list(func(rec entity.StockRecord) bool { return rec.LocationID == locationID }, onlyAvailable), nil
}

func (r *stockRepo) ListByItem(_ context.Context, itemID string, onlyAvailable bool) ([]*entity.StockView, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	return r.list(func(rec entity.StockRecord) bool { return rec.ItemID == itemID }, onlyAvailable), nil
}

func (r *stockRepo) list(match func(entity.StockRecord) bool, onlyAvailable bool) []*entity.StockView {
	out := make([]*entity.StockView, 0)
	for _, rec := range r.v.st.stock {
		if !match(rec) || (onlyAvailable && !rec.Available()) {
			continue
		}
		item := r.v.st.items[rec.ItemID]
		loc := r.v.st.locations[rec.LocationID]
		out = append(out, &entity.StockView{
			StockRecord:   rec,
			SKU:           item.SKU,
			ItemName:      item.Name,
			LocationLabel: loc.Label,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].LocationLabel != out[b].LocationLabel {
			return out[a].LocationLabel < out[b].LocationLabel
		}
		return out[a].SKU < out[b].SKU
	})
	return out
}
