package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// UnitOfWork repositorios atados a una misma transacción de BD.
type UnitOfWork struct {
	Stock        repository.StockRepository
	Transactions repository.TransactionRepository
	Batches      repository.PutawayBatchRepository
	Locations    repository.LocationRepository
	Items        repository.ItemRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error no queda ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// StockChangedEvent notificación emitida tras el commit por cada celda tocada.
type StockChangedEvent struct {
	Operation     string    `json:"operation"`
	ItemID        string    `json:"item_id"`
	LocationID    string    `json:"location_id"`
	Quantity      int       `json:"quantity"`
	TransactionID string    `json:"transaction_id,omitempty"`
	BatchID       string    `json:"batch_id,omitempty"`
	At            time.Time `json:"at"`
}

// EventPublisher difunde cambios de stock ya confirmados (websocket, Redis).
// Un fallo al publicar nunca invalida la operación.
type EventPublisher interface {
	Publish(ctx context.Context, events []StockChangedEvent) error
}
