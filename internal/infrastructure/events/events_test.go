package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/infrastructure/events"
	"github.com/jhoicas/bodega-api/pkg/config"
)

type fakeRedis struct {
	channel  string
	messages [][]byte
	err      error
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.messages = append(f.messages, message.([]byte))
	return redis.NewIntResult(1, nil)
}

type recorder struct {
	got [][]inventory.StockChangedEvent
	err error
}

func (r *recorder) Publish(_ context.Context, evs []inventory.StockChangedEvent) error {
	r.got = append(r.got, evs)
	return r.err
}

func TestRedisPublisher_PublicaJSONPorEvento(t *testing.T) {
	fake := &fakeRedis{}
	pub := events.NewRedisPublisher(fake, "bodega.stock")

	err := pub.Publish(context.Background(), []inventory.StockChangedEvent{
		{Operation: inventory.OpMove, ItemID: "x", LocationID: "a", Quantity: 6},
		{Operation: inventory.OpMove, ItemID: "x", LocationID: "b", Quantity: 4},
	})
	require.NoError(t, err)
	assert.Equal(t, "bodega.stock", fake.channel)
	require.Len(t, fake.messages, 2)

	var ev inventory.StockChangedEvent
	require.NoError(t, json.Unmarshal(fake.messages[1], &ev))
	assert.Equal(t, "b", ev.LocationID)
	assert.Equal(t, 4, ev.Quantity)
}

func TestRedisPublisher_PropagaError(t *testing.T) {
	pub := events.NewRedisPublisher(&fakeRedis{err: errors.New("conexión rechazada")}, "c")
	err := pub.Publish(context.Background(), []inventory.StockChangedEvent{{ItemID: "x"}})
	assert.ErrorContains(t, err, "conexión rechazada")
}

func TestNewRedisClient_SinDireccionDevuelveNil(t *testing.T) {
	assert.Nil(t, events.NewRedisClient(config.RedisConfig{}))
}

func TestFanout_EntregaATodosAunqueUnoFalle(t *testing.T) {
	a := &recorder{err: errors.New("caído")}
	b := &recorder{}
	f := events.Fanout{a, nil, b}

	err := f.Publish(context.Background(), []inventory.StockChangedEvent{{ItemID: "x"}})
	assert.ErrorContains(t, err, "caído")
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}
