package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// El ping inicial se reintenta con backoff exponencial: la BD puede tardar en levantar.
func NewPool(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}

	ping := func() error { return pool.Ping(ctx) }
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("BD no disponible, reintentando")
	}
	if err := backoff.RetryNotify(ping, connectBackOff(ctx, cfg), notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// connectBackOff política de reintento de conexión: exponencial, acotada por
// ConnectRetries y RetryMaxElapsed, cancelable por ctx.
func connectBackOff(ctx context.Context, cfg config.DBConfig) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 5 * time.Second
	if cfg.RetryMaxElapsed > 0 {
		exp.MaxElapsedTime = cfg.RetryMaxElapsed
	}
	var b backoff.BackOff = exp
	if cfg.ConnectRetries > 0 {
		b = backoff.WithMaxRetries(b, uint64(cfg.ConnectRetries))
	}
	return backoff.WithContext(b, ctx)
}
