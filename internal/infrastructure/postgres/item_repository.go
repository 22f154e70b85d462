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

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura del catálogo de items.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, company_id, sku, name, barcode, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var (
		i         entity.Item
		companyID *string
	)
	if err := row.Scan(&i.ID, &companyID, &i.SKU, &i.Name, &i.Barcode, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	if companyID != nil {
		i.CompanyID = *companyID
	}
	return &i, nil
}

// GetByID obtiene un item; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	i, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

// GetByBarcode resuelve el código escaneado; nil si no existe.
func (r *ItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	i, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE barcode = $1`, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return i, nil
}
