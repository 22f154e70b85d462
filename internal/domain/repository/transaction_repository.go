package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// TransactionRepository puerto del registro de auditoría. Nunca borra: las correcciones
// se hacen cambiando el estado y compensando el stock.
type TransactionRepository interface {
	Record(ctx context.Context, tx *entity.Transaction) error
	// GetByID devuelve nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	MarkStatus(ctx context.Context, id string, status entity.TransactionStatus, actor string) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	// ListByBatch devuelve las transacciones del lote en orden de creación.
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Transaction, error)
	// ListByBatchForUpdate igual que ListByBatch, bloqueando las filas hasta el fin de la transacción.
	ListByBatchForUpdate(ctx context.Context, batchID string) ([]*entity.Transaction, error)
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error)
}
