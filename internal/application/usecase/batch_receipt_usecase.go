package usecase

import (
	"context"
	"fmt"
	"time"
)

// ReceiptLine línea del comprobante de un lote.
type ReceiptLine struct {
	SKU      string
	ItemName string
	Quantity int
	Status   string
}

// BatchReceipt datos ya resueltos para imprimir el comprobante de un lote.
type BatchReceipt struct {
	BatchID   string
	Location  string
	Status    string
	CreatedBy string
	CreatedAt time.Time
	Lines     []ReceiptLine
}

// BatchReceiptGenerator puerto de salida: renderiza el comprobante (PDF).
type BatchReceiptGenerator interface {
	GenerateBatchReceipt(ctx context.Context, receipt BatchReceipt) ([]byte, error)
}

// BatchReceiptUseCase genera el comprobante imprimible de un lote de ubicación.
type BatchReceiptUseCase struct {
	queries   *StockQueryUseCase
	generator BatchReceiptGenerator
}

// NewBatchReceiptUseCase construye el caso de uso.
func NewBatchReceiptUseCase(queries *StockQueryUseCase, generator BatchReceiptGenerator) *BatchReceiptUseCase {
	return &BatchReceiptUseCase{queries: queries, generator: generator}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *BatchReceiptUseCase) Download(ctx context.Context, batchID string) ([]byte, string, error) {
	batch, loc, txs, err := uc.queries.loadBatch(ctx, batchID)
	if err != nil {
		return nil, "", err
	}
	receipt := BatchReceipt{
		BatchID:   batch.ID,
		Location:  loc.Label,
		Status:    string(batch.Status),
		CreatedBy: batch.CreatedBy,
		CreatedAt: batch.CreatedAt,
		Lines:     make([]ReceiptLine, 0, len(txs)),
	}
	for _, tx := range txs {
		line := ReceiptLine{Quantity: tx.Quantity, Status: string(tx.Status), SKU: tx.ItemID}
		if item, err := uc.queries.items.GetByID(ctx, tx.ItemID); err == nil && item != nil {
			line.SKU = item.SKU
			line.ItemName = item.Name
		}
		receipt.Lines = append(receipt.Lines, line)
	}
	pdf, err := uc.generator.GenerateBatchReceipt(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante de lote: %w", err)
	}
	return pdf, fmt.Sprintf("lote-%s.pdf", batch.ID), nil
}
