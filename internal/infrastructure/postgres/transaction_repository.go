package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo registro de auditoría sobre la tabla stock_transactions.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, item_id, type, quantity, from_location_id, to_location_id, status,
	putaway_batch_id, created_by, undone_by, created_at, updated_at`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var (
		t                 entity.Transaction
		typ               entity.TransactionType
		from, to, batchID *string
		undoneBy          *string
	)
	if err := row.Scan(&t.ID, &t.ItemID, &typ, &t.Quantity, &from, &to, &t.Status,
		&batchID, &t.CreatedBy, &undoneBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := entity.MovementFromColumns(typ, from, to)
	if err != nil {
		return nil, err
	}
	t.Movement = m
	if batchID != nil {
		t.BatchID = *batchID
	}
	if undoneBy != nil {
		t.UndoneBy = *undoneBy
	}
	return &t, nil
}

// Record inserta la transacción. Las columnas from/to salen de la variante de Movement.
func (r *TransactionRepo) Record(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	from, to := entity.MovementColumns(t.Movement)
	var batchID *string
	if t.BatchID != "" {
		batchID = &t.BatchID
	}
	query := `
		INSERT INTO stock_transactions (id, item_id, type, quantity, from_location_id, to_location_id,
			status, putaway_batch_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ItemID, t.Type(), t.Quantity, from, to,
		t.Status, batchID, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("record transaction: id %s duplicado: %w", t.ID, err)
		}
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID; nil si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila (undo concurrente).
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.getByID(ctx, id, " FOR UPDATE")
}

func (r *TransactionRepo) getByID(ctx context.Context, id, suffix string) (*entity.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM stock_transactions WHERE id = $1` + suffix
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// MarkStatus cambia el estado; actor solo se guarda si no está vacío (undo).
func (r *TransactionRepo) MarkStatus(ctx context.Context, id string, status entity.TransactionStatus, actor string) error {
	var undoneBy *string
	if actor != "" {
		undoneBy = &actor
	}
	query := `
		UPDATE stock_transactions
		SET status = $2, undone_by = COALESCE($3, undone_by), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, undoneBy)
	if err != nil {
		return fmt.Errorf("mark transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark transaction status: transacción %s no existe", id)
	}
	return nil
}

// UpdateQuantity corrige la cantidad registrada (edición de lote).
func (r *TransactionRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_transactions SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update transaction quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transaction quantity: transacción %s no existe", id)
	}
	return nil
}

// ListByBatch transacciones del lote en orden de creación.
func (r *TransactionRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Transaction, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return []*entity.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + `
		FROM stock_transactions WHERE putaway_batch_id = $1 ORDER BY seq`
	return r.list(ctx, query, batchID)
}

// ListByBatchForUpdate bloquea las transacciones del lote en orden de creación. Un Undo
// concurrente sobre una de ellas espera o hace esperar a la operación de lote.
func (r *TransactionRepo) ListByBatchForUpdate(ctx context.Context, batchID string) ([]*entity.Transaction, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return []*entity.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + `
		FROM stock_transactions WHERE putaway_batch_id = $1 ORDER BY seq FOR UPDATE`
	return r.list(ctx, query, batchID)
}

// ListByItem historial del item, más reciente primero.
func (r *TransactionRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return []*entity.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + `
		FROM stock_transactions WHERE item_id = $1 ORDER BY created_at DESC, seq DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, itemID, limit, offset)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
