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

var _ repository.PutawayBatchRepository = (*PutawayBatchRepo)(nil)

// PutawayBatchRepo lotes de ubicación sobre PostgreSQL.
type PutawayBatchRepo struct {
	q Querier
}

// NewPutawayBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPutawayBatchRepository(q Querier) *PutawayBatchRepo {
	return &PutawayBatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *PutawayBatchRepo) Create(ctx context.Context, b *entity.PutawayBatch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	query := `
		INSERT INTO putaway_batches (id, target_location_id, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, b.ID, b.TargetLocationID, b.Status, b.CreatedBy, b.CreatedAt, b.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create putaway batch: id %s duplicado: %w", b.ID, err)
		}
		return fmt.Errorf("create putaway batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; nil si no existe.
func (r *PutawayBatchRepo) GetByID(ctx context.Context, id string) (*entity.PutawayBatch, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate bloquea el lote para edición o reversión.
func (r *PutawayBatchRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.PutawayBatch, error) {
	return r.getByID(ctx, id, " FOR UPDATE")
}

func (r *PutawayBatchRepo) getByID(ctx context.Context, id, suffix string) (*entity.PutawayBatch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `
		SELECT id, target_location_id, status, created_by, created_at, updated_at
		FROM putaway_batches WHERE id = $1` + suffix
	var b entity.PutawayBatch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.TargetLocationID, &b.Status, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get putaway batch: %w", err)
	}
	return &b, nil
}

// UpdateStatus cambia el estado del lote.
func (r *PutawayBatchRepo) UpdateStatus(ctx context.Context, id string, status entity.BatchStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE putaway_batches SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update putaway batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update putaway batch status: lote %s no existe", id)
	}
	return nil
}
