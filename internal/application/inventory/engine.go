package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Operaciones del motor (campo "op" en logs y eventos).
const (
	OpPutaway      = "putaway"
	OpPutawayBatch = "putaway_batch"
	OpRemove       = "remove"
	OpMove         = "move"
	OpUndo         = "undo"
	OpEditBatch    = "edit_batch"
	OpUndoBatch    = "undo_batch"
)

// MovementEngine orquesta las operaciones del libro (Putaway, Remove, Move, Undo y lotes)
// como unidades atómicas sobre el repositorio de stock y el registro de transacciones.
// No guarda estado mutable propio: toda la persistencia pasa por el TxRunner.
type MovementEngine struct {
	txRunner  TxRunner
	publisher EventPublisher
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// Option personaliza el motor (reloj, generador de IDs).
type Option func(*MovementEngine)

// WithClock reemplaza el reloj del motor.
func WithClock(now func() time.Time) Option {
	return func(e *MovementEngine) { e.now = now }
}

// WithIDGenerator reemplaza el generador de IDs.
func WithIDGenerator(gen func() string) Option {
	return func(e *MovementEngine) { e.newID = gen }
}

// NewMovementEngine construye el motor. publisher puede ser nil.
func NewMovementEngine(txRunner TxRunner, publisher EventPublisher, log zerolog.Logger, opts ...Option) *MovementEngine {
	e := &MovementEngine{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log.With().Str("component", "movement_engine").Logger(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run ejecuta fn en una unidad de trabajo, registra el resultado y publica eventos tras el commit.
func (e *MovementEngine) run(ctx context.Context, op string, fn func(uow UnitOfWork, res *MovementResult) error) (*MovementResult, error) {
	res := &MovementResult{}
	err := e.txRunner.Run(ctx, func(uow UnitOfWork) error {
		return fn(uow, res)
	})
	if err != nil {
		ev := e.log.Warn()
		if !domain.IsDomainError(err) {
			ev = e.log.Error()
		}
		ev.Err(err).Str("op", op).Msg("operación rechazada")
		return nil, err
	}
	e.log.Info().
		Str("op", op).
		Int("transactions", len(res.Transactions)).
		Int("cells", len(res.Stock)).
		Msg("operación aplicada")
	e.publish(ctx, op, res)
	return res, nil
}

func (e *MovementEngine) publish(ctx context.Context, op string, res *MovementResult) {
	if e.publisher == nil || len(res.Stock) == 0 {
		return
	}
	at := e.now()
	var txID, batchID string
	if len(res.Transactions) == 1 {
		txID = res.Transactions[0].ID
	}
	if res.Batch != nil {
		batchID = res.Batch.ID
	}
	events := make([]StockChangedEvent, 0, len(res.Stock))
	for _, s := range res.Stock {
		events = append(events, StockChangedEvent{
			Operation:     op,
			ItemID:        s.ItemID,
			LocationID:    s.LocationID,
			Quantity:      s.Quantity,
			TransactionID: txID,
			BatchID:       batchID,
			At:            at,
		})
	}
	if err := e.publisher.Publish(ctx, events); err != nil {
		e.log.Error().Err(err).Str("op", op).Msg("publicar eventos de stock")
	}
}

// newTransaction arma una transacción ACTIVE lista para registrar.
func (e *MovementEngine) newTransaction(itemID string, m entity.Movement, qty int, batchID, userID string) *entity.Transaction {
	now := e.now()
	return &entity.Transaction{
		ID:        e.newID(),
		ItemID:    itemID,
		Movement:  m,
		Quantity:  qty,
		Status:    entity.TransactionStatusActive,
		BatchID:   batchID,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func requireItem(ctx context.Context, uow UnitOfWork, itemID string) (*entity.Item, error) {
	item, err := uow.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NewNotFoundError(domain.EntityItem, itemID)
	}
	return item, nil
}

// requireLocation resuelve una ubicación existente (Move/Remove nunca crean ubicaciones).
func requireLocation(ctx context.Context, uow UnitOfWork, label entity.LocationLabel) (*entity.Location, error) {
	loc, err := uow.Locations.GetByLabel(ctx, label.String())
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NewNotFoundError(domain.EntityLocation, label.String())
	}
	return loc, nil
}

func requireStock(ctx context.Context, uow UnitOfWork, stockID string) (*entity.StockRecord, error) {
	rec, err := uow.Stock.GetByIDForUpdate(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NewNotFoundError(domain.EntityStock, stockID)
	}
	return rec, nil
}

// describeShortage completa un InsufficientStockError con SKU y etiqueta para el operador.
func describeShortage(ctx context.Context, uow UnitOfWork, err error) error {
	var short *domain.InsufficientStockError
	if !errors.As(err, &short) {
		return err
	}
	if short.SKU == "" && short.ItemID != "" {
		if item, lookupErr := uow.Items.GetByID(ctx, short.ItemID); lookupErr == nil && item != nil {
			short.SKU = item.SKU
		}
	}
	if short.Location == "" && short.LocationID != "" {
		if loc, lookupErr := uow.Locations.GetByID(ctx, short.LocationID); lookupErr == nil && loc != nil {
			short.Location = loc.Label
		}
	}
	return short
}

// shortage construye el error de stock insuficiente para una celda leída con bloqueo.
func shortage(rec *entity.StockRecord, requested int) error {
	return &domain.InsufficientStockError{
		ItemID:     rec.ItemID,
		LocationID: rec.LocationID,
		Available:  rec.Quantity,
		Requested:  requested,
	}
}
