// Package memory implementa la unidad de trabajo del inventario en memoria.
// Cada Run trabaja sobre una copia del estado y la publica solo si fn termina sin error,
// lo que da la misma atomicidad que una transacción de BD. Run serializa las escrituras.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type cellKey struct {
	itemID, locationID string
}

type state struct {
	items     map[string]entity.Item
	barcodes  map[string]string // barcode -> item id
	locations map[string]entity.Location
	labels    map[string]string // label -> location id
	stock     map[string]entity.StockRecord
	cells     map[cellKey]string // (item, ubicación) -> stock id
	txs       map[string]entity.Transaction
	txOrder   []string
	batches   map[string]entity.PutawayBatch
}

func newState() state {
	return state{
		items:     map[string]entity.Item{},
		barcodes:  map[string]string{},
		locations: map[string]entity.Location{},
		labels:    map[string]string{},
		stock:     map[string]entity.StockRecord{},
		cells:     map[cellKey]string{},
		txs:       map[string]entity.Transaction{},
		batches:   map[string]entity.PutawayBatch{},
	}
}

func (s state) clone() state {
	c := state{
		items:     make(map[string]entity.Item, len(s.items)),
		barcodes:  make(map[string]string, len(s.barcodes)),
		locations: make(map[string]entity.Location, len(s.locations)),
		labels:    make(map[string]string, len(s.labels)),
		stock:     make(map[string]entity.StockRecord, len(s.stock)),
		cells:     make(map[cellKey]string, len(s.cells)),
		txs:       make(map[string]entity.Transaction, len(s.txs)),
		txOrder:   append([]string(nil), s.txOrder...),
		batches:   make(map[string]entity.PutawayBatch, len(s.batches)),
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.barcodes {
		c.barcodes[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.labels {
		c.labels[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.cells {
		c.cells[k] = v
	}
	for k, v := range s.txs {
		c.txs[k] = v
	}
	for k, v := range s.batches {
		c.batches[k] = v
	}
	return c
}

// Store libro de inventario en memoria. Sirve como TxRunner del motor y como
// fuente de lectura para las consultas.
type Store struct {
	mu    sync.Mutex
	state state
	now   func() time.Time
	newID func() string
}

// Option personaliza el Store.
type Option func(*Store)

// WithClock reemplaza el reloj usado en created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore crea un Store vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: newState(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run ejecuta fn sobre una copia del estado; si fn falla la copia se descarta.
func (s *Store) Run(ctx context.Context, fn func(uow inventory.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	v := &view{st: &work, lock: noLock{}, now: s.now, newID: s.newID}
	if err := fn(v.unitOfWork()); err != nil {
		return err
	}
	s.state = work
	return nil
}

// Repositories devuelve repositorios de lectura sobre el estado confirmado.
// Cada llamada toma el lock del Store.
func (s *Store) Repositories() inventory.UnitOfWork {
	v := &view{st: &s.state, lock: &s.mu, now: s.now, newID: s.newID}
	return v.unitOfWork()
}

// AddItem registra un item del catálogo (los datos maestros son externos al motor).
func (s *Store) AddItem(item entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = s.now()
		item.UpdatedAt = item.CreatedAt
	}
	s.state.items[item.ID] = item
	if item.Barcode != "" {
		s.state.barcodes[item.Barcode] = item.ID
	}
}

// AddLocation registra una ubicación existente.
func (s *Store) AddLocation(label entity.LocationLabel) entity.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := &view{st: &s.state, lock: noLock{}, now: s.now, newID: s.newID}
	return v.getOrCreateLocation(label)
}

// view repositorios sobre un estado. Dentro de Run el lock ya está tomado (noLock).
type view struct {
	st    *state
	lock  sync.Locker
	now   func() time.Time
	newID func() string
}

func (v *view) unitOfWork() inventory.UnitOfWork {
	return inventory.UnitOfWork{
		Stock:        &stockRepo{v},
		Transactions: &transactionRepo{v},
		Batches:      &batchRepo{v},
		Locations:    &locationRepo{v},
		Items:        &itemRepo{v},
	}
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
