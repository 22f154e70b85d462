package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, item_id, location_id, quantity, updated_at`

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	if err := row.Scan(&s.ID, &s.ItemID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene la celda (item, ubicación); nil si no existe.
func (r *StockRepo) Get(ctx context.Context, itemID, locationID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE item_id = $1 AND location_id = $2`
	s, err := scanStock(r.q.QueryRow(ctx, query, itemID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetByID obtiene una celda por su ID; nil si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate obtiene la celda y bloquea la fila hasta el fin de la transacción.
func (r *StockRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockRecord, error) {
	return r.getByID(ctx, id, " FOR UPDATE")
}

func (r *StockRepo) getByID(ctx context.Context, id, suffix string) (*entity.StockRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1` + suffix
	s, err := scanStock(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by id: %w", err)
	}
	return s, nil
}

// Adjust aplica quantity += delta en una sola sentencia. Un delta positivo hace upsert;
// uno negativo solo actualiza si el resultado no queda bajo cero.
func (r *StockRepo) Adjust(ctx context.Context, itemID, locationID string, delta int) (*entity.StockRecord, error) {
	if delta >= 0 {
		query := `
			INSERT INTO stock_records (id, item_id, location_id, quantity, updated_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (item_id, location_id)
			DO UPDATE SET quantity = stock_records.quantity + EXCLUDED.quantity, updated_at = now()
			RETURNING ` + stockColumns
		s, err := scanStock(r.q.QueryRow(ctx, query, uuid.New().String(), itemID, locationID, delta))
		if err != nil {
			return nil, fmt.Errorf("adjust stock: %w", err)
		}
		return s, nil
	}

	query := `
		UPDATE stock_records SET quantity = quantity + $3, updated_at = now()
		WHERE item_id = $1 AND location_id = $2 AND quantity + $3 >= 0
		RETURNING ` + stockColumns
	s, err := scanStock(r.q.QueryRow(ctx, query, itemID, locationID, delta))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	available := 0
	current, err := r.Get(ctx, itemID, locationID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		available = current.Quantity
	}
	return nil, &domain.InsufficientStockError{
		ItemID:     itemID,
		LocationID: locationID,
		Available:  available,
		Requested:  -delta,
	}
}

// ListByLocation stock de una ubicación con datos del item.
func (r *StockRepo) ListByLocation(ctx context.Context, locationID string, onlyAvailable bool) ([]*entity.StockView, error) {
	return r.listViews(ctx, "s.location_id = $1", locationID, onlyAvailable)
}

// ListByItem stock de un item en todas sus ubicaciones.
func (r *StockRepo) ListByItem(ctx context.Context, itemID string, onlyAvailable bool) ([]*entity.StockView, error) {
	return r.listViews(ctx, "s.item_id = $1", itemID, onlyAvailable)
}

func (r *StockRepo) listViews(ctx context.Context, where, arg string, onlyAvailable bool) ([]*entity.StockView, error) {
	if _, err := uuid.Parse(arg); err != nil {
		return []*entity.StockView{}, nil
	}
	query := `
		SELECT s.id, s.item_id, s.location_id, s.quantity, s.updated_at, i.sku, i.name, l.label
		FROM stock_records s
		JOIN items i ON i.id = s.item_id
		JOIN locations l ON l.id = s.location_id
		WHERE ` + where
	if onlyAvailable {
		query += ` AND s.quantity > 0`
	}
	query += ` ORDER BY l.label, i.sku`

	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.StockView, 0)
	for rows.Next() {
		var v entity.StockView
		if err := rows.Scan(&v.ID, &v.ItemID, &v.LocationID, &v.Quantity, &v.UpdatedAt,
			&v.SKU, &v.ItemName, &v.LocationLabel); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}
