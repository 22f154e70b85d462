package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ItemRepository resolución de items (colaborador externo de datos maestros).
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error)
}
