package dto

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// PutawayRequest body para POST /api/putaway. El item se identifica por ID o por código escaneado.
type PutawayRequest struct {
	ItemID   string `json:"item_id,omitempty" validate:"required_without=Barcode"`
	Barcode  string `json:"barcode,omitempty" validate:"required_without=ItemID"`
	Location string `json:"location" validate:"required,location_label"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// PutawayLineRequest línea de un lote de ubicación.
type PutawayLineRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// PutawayBatchRequest body para POST /api/putaway-batches.
type PutawayBatchRequest struct {
	Location string               `json:"location" validate:"required,location_label"`
	Items    []PutawayLineRequest `json:"items" validate:"required,min=1,dive"`
}

// StockLineRequest cantidad a tomar de una celda de stock existente.
type StockLineRequest struct {
	StockID  string `json:"stock_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// RemoveRequest body para POST /api/stock/remove.
type RemoveRequest struct {
	Items []StockLineRequest `json:"items" validate:"required,min=1,dive"`
}

// MoveRequest body para POST /api/stock/move.
type MoveRequest struct {
	FromLocation string             `json:"from_location" validate:"required,location_label"`
	ToLocation   string             `json:"to_location" validate:"required,location_label"`
	Items        []StockLineRequest `json:"items" validate:"required,min=1,dive"`
}

// BatchEditLineRequest nueva cantidad para una transacción del lote.
type BatchEditLineRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"gt=0"`
}

// EditBatchRequest body para PUT /api/putaway-batches/:id.
type EditBatchRequest struct {
	Items []BatchEditLineRequest `json:"items" validate:"required,min=1,dive"`
}

// StockResponse celda de stock.
type StockResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	LocationID string    `json:"location_id"`
	Quantity   int       `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StockViewResponse celda con SKU, nombre y etiqueta.
type StockViewResponse struct {
	StockResponse
	SKU      string `json:"sku"`
	ItemName string `json:"item_name"`
	Location string `json:"location"`
}

// TransactionResponse registro del libro. from/to se omiten según el tipo.
type TransactionResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	ItemID         string    `json:"item_id"`
	FromLocationID string    `json:"from_location_id,omitempty"`
	ToLocationID   string    `json:"to_location_id,omitempty"`
	Quantity       int       `json:"quantity"`
	Status         string    `json:"status"`
	BatchID        string    `json:"batch_id,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	UndoneBy       string    `json:"undone_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// BatchResponse lote de ubicación.
type BatchResponse struct {
	ID               string    `json:"id"`
	TargetLocationID string    `json:"target_location_id"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MovementResponse resultado de una operación del motor.
type MovementResponse struct {
	Stock        []StockResponse       `json:"stock"`
	Transactions []TransactionResponse `json:"transactions"`
	Batch        *BatchResponse        `json:"batch,omitempty"`
}

// BatchDetailResponse lote con su ubicación y transacciones en orden.
type BatchDetailResponse struct {
	Batch        BatchResponse         `json:"batch"`
	Location     string                `json:"location"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ItemResponse item resuelto por ID o código de barras.
type ItemResponse struct {
	ID      string `json:"id"`
	SKU     string `json:"sku"`
	Name    string `json:"name"`
	Barcode string `json:"barcode"`
}

// TransactionListResponse historial paginado.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// NewStockResponse mapea una celda.
func NewStockResponse(s *entity.StockRecord) StockResponse {
	return StockResponse{
		ID:         s.ID,
		ItemID:     s.ItemID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity,
		UpdatedAt:  s.UpdatedAt,
	}
}

// NewStockViewResponse mapea una celda enriquecida.
func NewStockViewResponse(v *entity.StockView) StockViewResponse {
	return StockViewResponse{
		StockResponse: NewStockResponse(&v.StockRecord),
		SKU:           v.SKU,
		ItemName:      v.ItemName,
		Location:      v.LocationLabel,
	}
}

// NewTransactionResponse mapea una transacción.
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		Type:           string(t.Type()),
		ItemID:         t.ItemID,
		FromLocationID: t.FromLocationID(),
		ToLocationID:   t.ToLocationID(),
		Quantity:       t.Quantity,
		Status:         string(t.Status),
		BatchID:        t.BatchID,
		CreatedBy:      t.CreatedBy,
		UndoneBy:       t.UndoneBy,
		CreatedAt:      t.CreatedAt,
	}
}

// NewBatchResponse mapea un lote.
func NewBatchResponse(b *entity.PutawayBatch) BatchResponse {
	return BatchResponse{
		ID:               b.ID,
		TargetLocationID: b.TargetLocationID,
		Status:           string(b.Status),
		CreatedBy:        b.CreatedBy,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// NewItemResponse mapea un item.
func NewItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{ID: i.ID, SKU: i.SKU, Name: i.Name, Barcode: i.Barcode}
}

// NewTransactionResponses mapea una lista de transacciones.
func NewTransactionResponses(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
