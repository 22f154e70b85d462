package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, label, aisle, bay, height, type, created_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	if err := row.Scan(&l.ID, &l.Label, &l.Aisle, &l.Bay, &l.Height, &l.Type, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByID obtiene una ubicación; nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	l, err := scanLocation(r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// GetByLabel busca por etiqueta canónica; nil si no existe.
func (r *LocationRepo) GetByLabel(ctx context.Context, label string) (*entity.Location, error) {
	parsed, err := entity.ParseLocationLabel(label)
	if err != nil {
		return nil, nil
	}
	l, err := scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE label = $1`, parsed.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by label: %w", err)
	}
	return l, nil
}

// GetOrCreate inserta la ubicación si la etiqueta es nueva. ON CONFLICT evita
// el error de unicidad cuando dos putaway la crean a la vez.
func (r *LocationRepo) GetOrCreate(ctx context.Context, label entity.LocationLabel) (*entity.Location, error) {
	loc := entity.NewLocation(uuid.New().String(), label, time.Now())
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (label) DO NOTHING`
	if _, err := r.q.Exec(ctx, query,
		loc.ID, loc.Label, loc.Aisle, loc.Bay, loc.Height, loc.Type, loc.CreatedAt); err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	found, err := r.GetByLabel(ctx, loc.Label)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("create location: %s no quedó registrada", loc.Label)
	}
	return found, nil
}
