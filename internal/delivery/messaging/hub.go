package messaging

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"catalog-service/internal/domain/events"
	"catalog-service/internal/infrastructure/logging"
)

const (
	defaultPingInterval = 30 * time.Second
	defaultSendBuffer   = 64
	writeWait           = 10 * time.Second
	// Clients never send application frames; this only bounds control traffic.
	maxInboundMessage = 512
)

type HubConfig struct {
	PingInterval time.Duration
	SendBuffer   int
}

// Hub keeps the registry of live websocket subscribers and fans events out to
// them. Delivery is at-most-once: a subscriber with a full buffer misses the
// frame.
type Hub struct {
	cfg      HubConfig
	logger   *logging.Logger
	upgrader websocket.Upgrader
	clients  map[*Client]struct{}
	mu       sync.RWMutex
}

func NewHub(cfg HubConfig, logger *logging.Logger) *Hub {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}
	return &Hub{
		cfg:    cfg,
		logger: logger.With("component", "ws_hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS middleware owns origin policy
			},
		},
		clients: make(map[*Client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the connection as a subscriber.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	client := &Client{
		id:   uuid.NewString(),
		hub:  h,
		send: make(chan []byte, h.cfg.SendBuffer),
	}
	client.state.Store(int32(StateConnecting))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		client.state.Store(int32(StateDisconnected))
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	client.conn = conn

	h.register(client)

	go client.writePump(h.cfg.PingInterval)
	go client.readPump(h.cfg.PingInterval)
}

// Broadcast writes event to every connected subscriber without blocking.
func (h *Hub) Broadcast(_ context.Context, event events.Event) {
	data, err := events.Encode(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "event", event.Name, "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, client := range clients {
		if client.trySend(data) {
			delivered++
		} else {
			h.logger.Debug("dropped event for slow subscriber", "event", event.Name, "client_id", client.id)
		}
	}
	h.logger.Debug("event broadcast", "event", event.Name, "recipients", delivered)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every subscriber. The pumps exit on their own.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for client := range clients {
		client.disconnect()
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	client.state.Store(int32(StateConnected))
	h.logger.Info("subscriber connected", "client_id", client.id, "clients", h.ClientCount())
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, existed := h.clients[client]
	delete(h.clients, client)
	h.mu.Unlock()

	client.disconnect()
	if existed {
		h.logger.Info("subscriber disconnected", "client_id", client.id, "clients", h.ClientCount())
	}
}

type ClientState int32

const (
	StateConnecting ClientState = iota
	StateConnected
	StateDisconnected
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Client is one websocket subscriber.
type Client struct {
	id    string
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	state atomic.Int32

	mu     sync.Mutex
	closed bool
}

func (c *Client) State() ClientState {
	return ClientState(c.state.Load())
}

func (c *Client) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// disconnect is idempotent. Closing send tells writePump to say goodbye.
func (c *Client) disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.state.Store(int32(StateDisconnected))
	close(c.send)
}

func (c *Client) readPump(pingInterval time.Duration) {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	pongWait := pingInterval + writeWait
	c.conn.SetReadLimit(maxInboundMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Inbound frames carry no meaning; reading drives pong and close handling.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", "client_id", c.id, "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (c *Client) writePump(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		}
	}
}
