package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// StockRepository puerto del libro de stock por (item, ubicación).
// Usado dentro de la unidad de trabajo; las lecturas que deciden un ajuste
// deben tomarse en la misma transacción que el ajuste.
type StockRepository interface {
	// Get devuelve la celda o nil si no existe.
	Get(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error)
	GetByID(ctx context.Context, id string) (*entity.StockRecord, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.StockRecord, error)
	// Adjust aplica quantity += delta de forma atómica, creando la celda si no existe.
	// Devuelve *domain.InsufficientStockError si el resultado quedaría negativo.
	Adjust(ctx context.Context, itemID, locationID string, delta int) (*entity.StockRecord, error)
	ListByLocation(ctx context.Context, locationID string, onlyAvailable bool) ([]*entity.StockView, error)
	ListByItem(ctx context.Context, itemID string, onlyAvailable bool) ([]*entity.StockView, error)
}
