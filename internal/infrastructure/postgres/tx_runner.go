package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// txBeginner lo que TxRunner necesita del pool.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Solo se reintenta el BEGIN (fallo de conexión); una vez abierta la transacción,
// cualquier error aborta y se devuelve tal cual.
type TxRunner struct {
	db      txBeginner
	retries uint64
	log     zerolog.Logger
}

// NewTxRunner construye el runner con el pool. retries acota los reintentos de BEGIN.
func NewTxRunner(db txBeginner, retries int, log zerolog.Logger) *TxRunner {
	if retries < 0 {
		retries = 0
	}
	return &TxRunner{db: db, retries: uint64(retries), log: log.With().Str("component", "tx_runner").Logger()}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los errores de dominio se devuelven sin envolver; el resto como *domain.PersistenceError.
func (r *TxRunner) Run(ctx context.Context, fn func(uow inventory.UnitOfWork) error) error {
	tx, err := r.begin(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUnitOfWork(tx)); err != nil {
		if domain.IsDomainError(err) || errors.Is(err, domain.ErrPersistence) {
			return err
		}
		return &domain.PersistenceError{Op: "unit of work", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &domain.PersistenceError{Op: "commit transaction", Err: err}
	}
	return nil
}

func (r *TxRunner) begin(ctx context.Context) (pgx.Tx, error) {
	var tx pgx.Tx
	op := func() error {
		var err error
		tx, err = r.db.Begin(ctx)
		return err
	}
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 50 * time.Millisecond
	exp.MaxElapsedTime = 5 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, r.retries), ctx)

	notify := func(err error, wait time.Duration) {
		r.log.Warn().Err(err).Dur("retry_in", wait).Msg("BEGIN falló, reintentando")
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return tx, nil
}

// NewUnitOfWork arma los repositorios sobre q (pool para lecturas, tx dentro de Run).
func NewUnitOfWork(q Querier) inventory.UnitOfWork {
	return inventory.UnitOfWork{
		Stock:        NewStockRepository(q),
		Transactions: NewTransactionRepository(q),
		Batches:      NewPutawayBatchRepository(q),
		Locations:    NewLocationRepository(q),
		Items:        NewItemRepository(q),
	}
}
