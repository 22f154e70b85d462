package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/pkg/config"
)

var _ inventory.EventPublisher = (*RedisPublisher)(nil)

// redisPublisher subconjunto de *redis.Client usado para publicar.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publica cada StockChangedEvent como JSON en un canal pub/sub de Redis.
type RedisPublisher struct {
	client  redisPublisher
	channel string
}

// NewRedisClient crea el cliente Redis; devuelve nil si no hay REDIS_ADDR.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})
}

// NewRedisPublisher construye el publicador sobre un cliente ya creado.
func NewRedisPublisher(client redisPublisher, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish envía los eventos en orden; se detiene en el primer error.
func (p *RedisPublisher) Publish(ctx context.Context, events []inventory.StockChangedEvent) error {
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("serializar evento: %w", err)
		}
		if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			return fmt.Errorf("redis publish %s: %w", p.channel, err)
		}
	}
	return nil
}
