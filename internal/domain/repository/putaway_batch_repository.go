package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// PutawayBatchRepository puerto de persistencia para lotes de ubicación.
type PutawayBatchRepository interface {
	Create(ctx context.Context, batch *entity.PutawayBatch) error
	GetByID(ctx context.Context, id string) (*entity.PutawayBatch, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.PutawayBatch, error)
	UpdateStatus(ctx context.Context, id string, status entity.BatchStatus) error
}
