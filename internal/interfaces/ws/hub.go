package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
)

var _ inventory.EventPublisher = (*Hub)(nil)

// Conn lo mínimo que el hub usa de una conexión websocket.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub difunde los cambios de stock a los escáneres conectados.
type Hub struct {
	clients    map[Conn]bool
	register   chan Conn
	unregister chan Conn
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        zerolog.Logger
}

// NewHub crea el hub; hay que llamar Run en una goroutine.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Conn]bool),
		register:   make(chan Conn),
		unregister: make(chan Conn),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "ws_hub").Logger(),
	}
}

// Run atiende altas, bajas y difusión hasta que ctx se cancela.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register da de alta una conexión. Si el hub ya terminó, la cierra.
func (h *Hub) Register(conn Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
	}
}

// Unregister da de baja y cierra una conexión.
func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Clients número de conexiones activas.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Publish encola un mensaje JSON por evento. Nunca bloquea la operación que lo emite:
// si el buffer está lleno el evento se descarta.
func (h *Hub) Publish(ctx context.Context, events []inventory.StockChangedEvent) error {
	for _, ev := range events {
		msg, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		select {
		case h.broadcast <- msg:
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		default:
			h.log.Warn().Str("item_id", ev.ItemID).Msg("buffer ws lleno, evento descartado")
		}
	}
	return nil
}

// Handler endpoint fiber para /ws: registra la conexión y la mantiene hasta que el cliente cierra.
func (h *Hub) Handler() func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		h.Register(c)
		defer h.Unregister(c)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}
}
