package ws_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/interfaces/ws"
)

type fakeConn struct {
	mu      sync.Mutex
	msgs    [][]byte
	failing bool
	closed  bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errors.New("conexión rota")
	}
	c.msgs = append(c.msgs, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.msgs...)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*ws.Hub, context.Context) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := ws.NewHub(zerolog.Nop())
	go hub.Run(ctx)
	return hub, ctx
}

func TestHub_PublishDifundeEventos(t *testing.T) {
	hub, ctx := startHub(t)
	conn := &fakeConn{}
	hub.Register(conn)

	err := hub.Publish(ctx, []inventory.StockChangedEvent{
		{Operation: inventory.OpPutaway, ItemID: "item-1", LocationID: "loc-1", Quantity: 10},
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(conn.received()) == 1 }, time.Second, 5*time.Millisecond)
	var ev inventory.StockChangedEvent
	require.NoError(t, json.Unmarshal(conn.received()[0], &ev))
	assert.Equal(t, "item-1", ev.ItemID)
	assert.Equal(t, 10, ev.Quantity)
}

func TestHub_ConexionRotaSeDaDeBaja(t *testing.T) {
	hub, ctx := startHub(t)
	conn := &fakeConn{failing: true}
	hub.Register(conn)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(ctx, []inventory.StockChangedEvent{{ItemID: "x"}}))

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestHub_Unregister(t *testing.T) {
	hub, _ := startHub(t)
	conn := &fakeConn{}
	hub.Register(conn)
	hub.Unregister(conn)

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, conn.isClosed())
}
