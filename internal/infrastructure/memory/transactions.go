package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*transactionRepo)(nil)

type transactionRepo struct{ v *view }

func (r *transactionRepo) Record(_ context.Context, tx *entity.Transaction) error {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	if _, dup := r.v.st.txs[tx.ID]; dup {
		return fmt.Errorf("transacción duplicada: %s", tx.ID)
	}
	r.v.st.txs[tx.ID] = *tx
	r.v.st.txOrder = append(r.v.st.txOrder, tx.ID)
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	tx, ok := r.v.st.txs[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (r *transactionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *transactionRepo) MarkStatus(_ context.Context, id string, status entity.TransactionStatus, actor string) error {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	tx, ok := r.v.st.txs[id]
	if !ok {
		return fmt.Errorf("transacción %s no existe", id)
	}
	tx.Status = status
	if actor != "" {
		tx.UndoneBy = actor
	}
	tx.UpdatedAt = r.v.now()
	r.v.st.txs[id] = tx
	return nil
}

func (r *transactionRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	tx, ok := r.v.st.txs[id]
	if !ok {
		return fmt.Errorf("transacción %s no existe", id)
	}
	tx.Quantity = quantity
	tx.UpdatedAt = r.v.now()
	r.v.st.txs[id] = tx
	return nil
}

func (r *transactionRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.Transaction, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	out := make([]*entity.Transaction, 0)
	for _, id := range r.v.st.txOrder {
		tx := r.v.st.txs[id]
		if tx.BatchID == batchID {
			out = append(out, &tx)
		}
	}
	return out, nil
}

// ListByBatchForUpdate equivale a ListByBatch: Run ya serializa las unidades de trabajo.
func (r *transactionRepo) ListByBatchForUpdate(ctx context.Context, batchID string) ([]*entity.Transaction, error) {
	return r.ListByBatch(ctx, batchID)
}

// ListByItem devuelve el historial del item, más reciente primero.
func (r *transactionRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error) {
	r.v.lock.Lock()
	defer r.v.lock.Unlock()
	all := make([]*entity.Transaction, 0)
	for i := len(r.v.st.txOrder) - 1; i >= 0; i-- {
		tx := r.v.st.txs[r.v.st.txOrder[i]]
		if tx.ItemID == itemID {
			all = append(all, &tx)
		}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].CreatedAt.After(all[b].CreatedAt) })
	if offset >= len(all) {
		return []*entity.Transaction{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
