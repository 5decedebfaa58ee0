package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ayusman/rpsmood/internal/app"
)

// WebSocket tuning.
const (
	// DefaultBroadcastRate is the steady-state push rate per second.
	DefaultBroadcastRate = 15
	clientBuffer         = 8
	writeWait            = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Publisher is the source of frame results.
type Publisher interface {
	Subscribe(fn func(app.FrameResult)) (unsubscribe func())
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts FrameResults to WebSocket clients. Routine frames are
// throttled; frames that change the round state are always sent.
type Hub struct {
	limiter     *rate.Limiter
	log         logrus.FieldLogger
	unsubscribe func()

	mu        sync.Mutex
	clients   map[*client]struct{}
	lastState string
	closed    bool
}

// NewHub subscribes to pub. A non-positive perSecond means DefaultBroadcastRate.
func NewHub(pub Publisher, perSecond float64, log logrus.FieldLogger) *Hub {
	if perSecond <= 0 {
		perSecond = DefaultBroadcastRate
	}
	h := &Hub{
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		log:     log,
		clients: make(map[*client]struct{}),
	}
	h.unsubscribe = pub.Subscribe(h.publish)
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade error")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	if !h.add(c) {
		conn.Close()
		return
	}
	go h.writeLoop(c)

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close unsubscribes from the game and disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	h.unsubscribe()
	for c := range clients {
		close(c.send)
	}
}

// publish runs on the game loop and never blocks it.
func (h *Hub) publish(fr app.FrameResult) {
	state := fr.State.String()

	h.mu.Lock()
	changed := state != h.lastState || fr.JustResolved
	h.lastState = state
	idle := len(h.clients) == 0
	h.mu.Unlock()

	if idle || (!changed && !h.limiter.Allow()) {
		return
	}

	msg, err := json.Marshal(fr)
	if err != nil {
		h.log.WithError(err).Warn("failed to encode frame result")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client; drop this frame for it.
		}
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

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
