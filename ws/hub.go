package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"sazonpos/entity"
	"sazonpos/services"
	"sazonpos/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	broadcastQueue = 256
	maxMessageSize = 4096
	pongWait       = 60 * time.Second
)

// ReadyMarker advances an order when a kitchen screen reports it done.
type ReadyMarker interface {
	MarkReady(ctx context.Context, orderID uint) error
}

// Client is one connected screen (cashier, kitchen, admin).
type Client struct {
	conn    *websocket.Conn
	session *entity.Session
}

// Hub fans every event out to every connected client, in the order published.
// Only Run writes to connections.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan services.Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex

	// a client that answers no ping within pongWait is dropped
	pongWait   time.Duration
	pingPeriod time.Duration

	Orders ReadyMarker
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan services.Event, broadcastQueue),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		pongWait:   pongWait,
		pingPeriod: pongWait * 9 / 10,
	}
}

// Publish queues an event for delivery and returns without waiting for clients.
func (h *Hub) Publish(evt services.Event) {
	select {
	case h.broadcast <- evt:
	case <-h.done:
	}
}

// Clients reports how many connections are registered.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run serves register/unregister/broadcast until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				c.conn.Close()
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			log.Printf("🔌 %s connected (%s)", c.session.Username, c.session.Role)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.conn.Close()
				log.Printf("🔌 %s disconnected", c.session.Username)
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			data, err := json.Marshal(evt)
			if err != nil {
				log.Printf("ws encode %s: %v", evt.Name, err)
				continue
			}
			h.mu.Lock()
			for c := range h.clients {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
					log.Printf("ws write error: %v", err)
					c.conn.Close()
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades an authenticated request. Route: GET /ws
func (h *Hub) HandleWebSocket(c *gin.Context) {
	sess := utils.CurrentSession(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	client := &Client{conn: conn, session: sess}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go h.listen(client)
	go h.ping(client)
}

// ping keeps the read deadline of a live client moving. WriteControl may run
// alongside the hub's writes.
func (h *Hub) ping(c *Client) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-h.done:
			return
		}
	}
}

// inbound is what clients send: {"event": "orden_lista", "data": 12}
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func (h *Hub) listen(c *Client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		_, msgData, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(msgData, &msg); err != nil {
			log.Printf("invalid payload: %v", err)
			continue
		}

		switch msg.Event {
		case services.EventOrderIsReady:
			h.orderReady(c, msg.Data)
		default:
			log.Printf("ws: ignoring event %q", msg.Event)
		}
	}
}

func (h *Hub) orderReady(c *Client, data json.RawMessage) {
	if c.session.Role != entity.RoleAdmin && c.session.Role != entity.RoleKitchen {
		log.Printf("ws: %s (%s) may not mark orders ready", c.session.Username, c.session.Role)
		return
	}
	id, ok := parseOrderID(data)
	if !ok {
		log.Printf("ws: bad order id %s", string(data))
		return
	}
	if h.Orders == nil {
		return
	}
	if err := h.Orders.MarkReady(context.Background(), id); err != nil {
		log.Printf("ws: mark order #%d ready: %v", id, err)
	}
}

// parseOrderID accepts 12 or "12".
func parseOrderID(data json.RawMessage) (uint, bool) {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
