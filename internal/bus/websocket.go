package bus

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/leandrodaf/chordie/sdk/contracts"
)

const (
	outboxSize = 32
	writeWait  = time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	conn   *websocket.Conn
	outbox chan Event
	done   chan struct{}
}

// Hub broadcasts snapshots to every attached websocket client.
type Hub struct {
	logger  contracts.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates an empty Hub.
func NewHub(logger contracts.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and streams events to it until either side closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", h.logger.Field().Error("error", err))
		return
	}

	c := &client{conn: conn, outbox: make(chan Event, outboxSize), done: make(chan struct{})}
	if !h.add(c) {
		conn.Close()
		return
	}
	h.logger.Info("UI listener attached", h.logger.Field().String("remote", r.RemoteAddr))

	go h.readLoop(c)
	h.writeLoop(c)
}

// Emit queues the snapshot for every client. It never blocks; clients whose
// outbox is full miss this snapshot.
func (h *Hub) Emit(event string, notes contracts.HeldNotes) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return ErrNoListeners
	}
	ev := Event{Name: event, Notes: notes}
	for c := range h.clients {
		select {
		case c.outbox <- ev:
		default:
		}
	}
	return nil
}

// Listeners returns the number of attached clients.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.dropLocked(c)
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.done)
}

// readLoop discards inbound frames and notices when the peer goes away.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer func() {
		h.drop(c)
		c.conn.Close()
		h.logger.Info("UI listener detached")
	}()

	for {
		select {
		case ev := <-c.outbox:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
