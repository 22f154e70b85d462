package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre el libro: stock disponible,
// historial y detalle de lotes. No abre unidad de trabajo.
type StockQueryUseCase struct {
	stock     repository.StockRepository
	txs       repository.TransactionRepository
	batches   repository.PutawayBatchRepository
	locations repository.LocationRepository
	items     repository.ItemRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	stock repository.StockRepository,
	txs repository.TransactionRepository,
	batches repository.PutawayBatchRepository,
	locations repository.LocationRepository,
	items repository.ItemRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stock: stock, txs: txs, batches: batches, locations: locations, items: items}
}

// AvailableAtLocation stock con cantidad > 0 en la ubicación escaneada.
func (uc *StockQueryUseCase) AvailableAtLocation(ctx context.Context, label string) ([]dto.StockViewResponse, error) {
	parsed, err := entity.ParseLocationLabel(label)
	if err != nil {
		return nil, domain.NewValidationError("location", err.Error())
	}
	loc, err := uc.locations.GetByLabel(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NewNotFoundError(domain.EntityLocation, parsed.String())
	}
	views, err := uc.stock.ListByLocation(ctx, loc.ID, true)
	if err != nil {
		return nil, err
	}
	return toStockViews(views), nil
}

// StockForItem stock disponible de un item en todas sus ubicaciones.
func (uc *StockQueryUseCase) StockForItem(ctx context.Context, itemID string) ([]dto.StockViewResponse, error) {
	if _, err := uc.ResolveItem(ctx, itemID); err != nil {
		return nil, err
	}
	views, err := uc.stock.ListByItem(ctx, itemID, true)
	if err != nil {
		return nil, err
	}
	return toStockViews(views), nil
}

// ItemHistory transacciones del item, más reciente primero.
func (uc *StockQueryUseCase) ItemHistory(ctx context.Context, itemID string, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	if _, err := uc.ResolveItem(ctx, itemID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	txs, err := uc.txs.ListByItem(ctx, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionListResponse{
		Items: dto.NewTransactionResponses(txs),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// BatchDetail lote con su ubicación destino y transacciones en orden.
func (uc *StockQueryUseCase) BatchDetail(ctx context.Context, batchID string) (*dto.BatchDetailResponse, error) {
	batch, loc, txs, err := uc.loadBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return &dto.BatchDetailResponse{
		Batch:        dto.NewBatchResponse(batch),
		Location:     loc.Label,
		Transactions: dto.NewTransactionResponses(txs),
	}, nil
}

// ResolveItem item por ID o NotFound.
func (uc *StockQueryUseCase) ResolveItem(ctx context.Context, itemID string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFoundError(domain.EntityItem, itemID)
	}
	return item, nil
}

// ResolveItemByBarcode item por código escaneado o NotFound.
func (uc *StockQueryUseCase) ResolveItemByBarcode(ctx context.Context, barcode string) (*entity.Item, error) {
	if barcode == "" {
		return nil, domain.NewValidationError("barcode", "es requerido")
	}
	item, err := uc.items.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFoundError(domain.EntityItem, barcode)
	}
	return item, nil
}

func (uc *StockQueryUseCase) loadBatch(ctx context.Context, batchID string) (*entity.PutawayBatch, *entity.Location, []*entity.Transaction, error) {
	batch, err := uc.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, nil, nil, err
	}
	if batch == nil {
		return nil, nil, nil, domain.NewNotFoundError(domain.EntityBatch, batchID)
	}
	loc, err := uc.locations.GetByID(ctx, batch.TargetLocationID)
	if err != nil {
		return nil, nil, nil, err
	}
	if loc == nil {
		return nil, nil, nil, fmt.Errorf("lote %s: ubicación %s no existe", batch.ID, batch.TargetLocationID)
	}
	txs, err := uc.txs.ListByBatch(ctx, batch.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return batch, loc, txs, nil
}

func toStockViews(views []*entity.StockView) []dto.StockViewResponse {
	out := make([]dto.StockViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.NewStockViewResponse(v))
	}
	return out
}
