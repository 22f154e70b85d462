package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LocationRepository resolución de ubicaciones por etiqueta (colaborador externo).
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	// GetByLabel devuelve nil si la etiqueta no existe.
	GetByLabel(ctx context.Context, label string) (*entity.Location, error)
	// GetOrCreate crea la ubicación la primera vez que se escanea (solo flujo de putaway).
	GetOrCreate(ctx context.Context, label entity.LocationLabel) (*entity.Location, error)
}
