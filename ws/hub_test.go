package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"sazonpos/entity"
	"sazonpos/services"
	"sazonpos/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type fakeOrders struct {
	mu  sync.Mutex
	ids []uint
}

func (f *fakeOrders) MarkReady(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	return nil
}

func (f *fakeOrders) marked() []uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint(nil), f.ids...)
}

// startHub serves the hub on a test server; ?role= stands in for login.
func startHub(t *testing.T, opts ...func(*Hub)) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	for _, opt := range opts {
		opt(hub)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		role := entity.Role(c.Query("role"))
		utils.SetSession(c, &entity.Session{ID: "s-" + string(role), Username: string(role), Role: role})
	}, hub.HandleWebSocket)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string, role entity.Role) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?role="+string(role), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) services.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt services.Event
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("read: %v", err)
	}
	return evt
}

func TestHubBroadcastsInOrder(t *testing.T) {
	hub, url := startHub(t)
	caja := dial(t, url, entity.RoleCashier)
	cocina := dial(t, url, entity.RoleKitchen)
	waitFor(t, "2 clients", func() bool { return hub.Clients() == 2 })

	names := []string{services.EventNewOrder, services.EventMenuUpdated, services.EventOrderStatus}
	for _, n := range names {
		hub.Publish(services.Event{Name: n})
	}

	for _, conn := range []*websocket.Conn{caja, cocina} {
		for _, want := range names {
			if got := readEvent(t, conn); got.Name != want {
				t.Errorf("event = %q, want %q", got.Name, want)
			}
		}
	}
}

func TestHubPayloadShape(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url, entity.RoleAdmin)
	waitFor(t, "client", func() bool { return hub.Clients() == 1 })

	hub.Publish(services.Event{
		Name: services.EventOrderStatus,
		Data: services.OrderStatusChange{ID: 12, Status: entity.OrderReady},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Event string `json:"event"`
		Data  struct {
			ID     uint   `json:"id"`
			Estado string `json:"estado"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	if got.Event != "actualizar_estado_orden" || got.Data.ID != 12 || got.Data.Estado != "Lista" {
		t.Errorf("payload = %s", raw)
	}
}

func TestHubSurvivesDeadClient(t *testing.T) {
	hub, url := startHub(t)
	dead := dial(t, url, entity.RoleCashier)
	alive := dial(t, url, entity.RoleKitchen)
	waitFor(t, "2 clients", func() bool { return hub.Clients() == 2 })

	dead.Close()
	hub.Publish(services.Event{Name: services.EventNewOrder})
	hub.Publish(services.Event{Name: services.EventMenuUpdated})

	if got := readEvent(t, alive); got.Name != services.EventNewOrder {
		t.Errorf("first = %q, want %q", got.Name, services.EventNewOrder)
	}
	if got := readEvent(t, alive); got.Name != services.EventMenuUpdated {
		t.Errorf("second = %q, want %q", got.Name, services.EventMenuUpdated)
	}
	waitFor(t, "dead client removed", func() bool { return hub.Clients() == 1 })
}

func TestHubDropsOversizedMessage(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url, entity.RoleKitchen)
	waitFor(t, "client", func() bool { return hub.Clients() == 1 })

	big := `{"event":"orden_lista","data":"` + strings.Repeat("9", maxMessageSize) + `"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(big)); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "oversized client removed", func() bool { return hub.Clients() == 0 })
}

func TestHubDropsClientThatStopsAnsweringPings(t *testing.T) {
	hub, url := startHub(t, func(h *Hub) {
		h.pongWait = 300 * time.Millisecond
		h.pingPeriod = 50 * time.Millisecond
	})

	// only a reading client answers pings
	alive := dial(t, url, entity.RoleCashier)
	go func() {
		for {
			if _, _, err := alive.ReadMessage(); err != nil {
				return
			}
		}
	}()
	dial(t, url, entity.RoleKitchen)
	waitFor(t, "2 clients", func() bool { return hub.Clients() == 2 })

	waitFor(t, "silent client removed", func() bool { return hub.Clients() == 1 })
	time.Sleep(600 * time.Millisecond)
	if n := hub.Clients(); n != 1 {
		t.Errorf("clients = %d, want the answering client kept", n)
	}
}

func TestHubOrderReadyFromKitchen(t *testing.T) {
	hub, url := startHub(t)
	orders := &fakeOrders{}
	hub.Orders = orders

	cocina := dial(t, url, entity.RoleKitchen)
	caja := dial(t, url, entity.RoleCashier)
	waitFor(t, "2 clients", func() bool { return hub.Clients() == 2 })

	if err := caja.WriteJSON(map[string]any{"event": "orden_lista", "data": 3}); err != nil {
		t.Fatal(err)
	}
	if err := cocina.WriteJSON(map[string]any{"event": "orden_lista", "data": "7"}); err != nil {
		t.Fatal(err)
	}

	waitFor(t, "kitchen mark", func() bool { return len(orders.marked()) > 0 })
	if got := orders.marked(); len(got) != 1 || got[0] != 7 {
		t.Errorf("marked = %v, want [7]", got)
	}
}

func TestOrderReadyRoles(t *testing.T) {
	tests := []struct {
		role entity.Role
		want bool
	}{
		{entity.RoleAdmin, true},
		{entity.RoleKitchen, true},
		{entity.RoleCashier, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			orders := &fakeOrders{}
			h := &Hub{Orders: orders}
			c := &Client{session: &entity.Session{Username: "x", Role: tt.role}}

			h.orderReady(c, json.RawMessage(`5`))

			if got := len(orders.marked()) == 1; got != tt.want {
				t.Errorf("marked = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseOrderID(t *testing.T) {
	tests := []struct {
		in   string
		want uint
		ok   bool
	}{
		{`12`, 12, true},
		{`"12"`, 12, true},
		{` 4 `, 4, true},
		{`0`, 0, false},
		{`-1`, 0, false},
		{`"doce"`, 0, false},
		{`null`, 0, false},
		{``, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseOrderID(json.RawMessage(tt.in))
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseOrderID(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
