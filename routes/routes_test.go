package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"sazonpos/configs"
	"sazonpos/middlewares"
	"sazonpos/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type server struct {
	t *testing.T
	r *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := configs.Open("sqlite", ":memory:", logger.Silent)
	if err != nil {
		t.Fatal(err)
	}
	if err := configs.Migrate(db); err != nil {
		t.Fatal(err)
	}
	if err := configs.SeedAdmin(db, "admin", "admin"); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	public := filepath.Join(dir, "public")
	if err := os.Mkdir(public, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, page := range []string{"login.html", "index.html", "caja.html", "cocina.html", "admin.html", "reportes.html"} {
		if err := os.WriteFile(filepath.Join(public, page), []byte("<html>"+page+"</html>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &configs.Config{
		SessionSecret: "test-secret",
		SessionTTL:    configs.SessionTTL,
		PublicDir:     public,
	}
	store := configs.LoadRestaurantConfig(filepath.Join(dir, "config.json"))

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	r := gin.New()
	RegisterRoutes(r, db, cfg, store, hub)
	return &server{t: t, r: r}
}

func (s *server) do(method, path, cookie string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middlewares.SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body, err)
		}
	}
	return w, env
}

func (s *server) login(username, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s = %d %s", username, w.Code, env.Error)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == middlewares.SessionCookie {
			if !c.HttpOnly {
				s.t.Error("session cookie is not HttpOnly")
			}
			return c.Value
		}
	}
	s.t.Fatal("login set no session cookie")
	return ""
}

func (s *server) createUser(adminCookie, username, role string) {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/usuarios", adminCookie, map[string]string{
		"username": username, "password": "1234", "role": role,
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("create %s = %d %s", username, w.Code, env.Error)
	}
}

func TestLoginErrorsAreIdentical(t *testing.T) {
	s := newServer(t)

	w1, _ := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "admin", "password": "wrong"})
	w2, _ := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "ghost", "password": "wrong"})

	if w1.Code != http.StatusUnauthorized || w2.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d / %d, want 401", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Errorf("bodies differ: %s vs %s", w1.Body, w2.Body)
	}

	if w, _ := s.do(http.MethodPost, "/api/login", "", map[string]string{"username": "admin"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing password = %d, want 400", w.Code)
	}
}

func TestRoleGuard(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin", "admin")
	s.createUser(admin, "cocina1", "cocina")
	s.createUser(admin, "caja1", "caja")
	kitchen := s.login("cocina1", "1234")
	cashier := s.login("caja1", "1234")

	tests := []struct {
		name   string
		method string
		path   string
		cookie string
		status int
	}{
		{"anonymous menu", http.MethodGet, "/api/menu", "", http.StatusUnauthorized},
		{"public config", http.MethodGet, "/api/config", "", http.StatusOK},
		{"kitchen reports", http.MethodGet, "/api/reportes/historial", kitchen, http.StatusForbidden},
		{"cashier reports", http.MethodGet, "/api/reportes/historial", cashier, http.StatusForbidden},
		{"admin reports", http.MethodGet, "/api/reportes/historial", admin, http.StatusOK},
		{"kitchen pending", http.MethodGet, "/api/ordenes-pendientes", kitchen, http.StatusOK},
		{"kitchen inventory", http.MethodGet, "/api/inventario", kitchen, http.StatusForbidden},
		{"cashier inventory", http.MethodGet, "/api/inventario", cashier, http.StatusOK},
		{"cashier users", http.MethodGet, "/api/usuarios", cashier, http.StatusForbidden},
		{"kitchen creates order", http.MethodPost, "/api/ordenes", kitchen, http.StatusForbidden},
		{"cashier marks ready", http.MethodPut, "/api/ordenes/1/lista", cashier, http.StatusForbidden},
		{"kitchen me", http.MethodGet, "/api/me", kitchen, http.StatusOK},
		{"kitchen menu", http.MethodGet, "/api/menu", kitchen, http.StatusForbidden},
		{"cashier menu", http.MethodGet, "/api/menu", cashier, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w, env := s.do(tt.method, tt.path, tt.cookie, nil); w.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.status, env.Error)
			}
		})
	}
}

func TestLogoutEndsSession(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin", "admin")

	if w, _ := s.do(http.MethodPost, "/api/logout", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}
	if w, _ := s.do(http.MethodGet, "/api/me", admin, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout = %d, want 401", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin", "admin")
	s.createUser(admin, "caja1", "caja")
	s.createUser(admin, "cocina1", "cocina")
	cashier := s.login("caja1", "1234")
	kitchen := s.login("cocina1", "1234")

	order := map[string]any{"items": []map[string]any{
		{"nombre": "Baleada", "precio": 50, "impuesto_incluido": true},
		{"nombre": "Baleada", "precio": 50, "impuesto_incluido": true},
		{"nombre": "Refresco", "precio": 20, "impuesto_incluido": false},
	}}
	w, env := s.do(http.MethodPost, "/api/ordenes", cashier, order)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order = %d %s", w.Code, env.Error)
	}
	var created struct {
		ID     uint    `json:"id"`
		Total  float64 `json:"total"`
		Estado string  `json:"estado"`
		Items  []struct {
			Nombre   string `json:"nombre"`
			Cantidad int    `json:"cantidad"`
		} `json:"items"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 || created.Estado != "Pendiente" || len(created.Items) != 2 || created.Items[0].Cantidad != 2 {
		t.Errorf("order = %+v", created)
	}
	if want := 100 + 20*1.15; created.Total < want-1e-6 || created.Total > want+1e-6 {
		t.Errorf("total = %v, want %v", created.Total, want)
	}

	if w, env := s.do(http.MethodPost, "/api/ordenes", cashier, map[string]any{"items": []any{}}); w.Code != http.StatusBadRequest {
		t.Errorf("empty order = %d %s, want 400", w.Code, env.Error)
	}

	_, env = s.do(http.MethodGet, "/api/ordenes-pendientes", kitchen, nil)
	var pending []struct {
		ID uint `json:"id"`
	}
	json.Unmarshal(env.Data, &pending)
	if len(pending) != 1 || pending[0].ID != 1 {
		t.Errorf("pending = %s", env.Data)
	}

	if w, env := s.do(http.MethodPut, "/api/ordenes/1/lista", kitchen, nil); w.Code != http.StatusOK {
		t.Fatalf("mark ready = %d %s", w.Code, env.Error)
	}
	if w, _ := s.do(http.MethodPut, "/api/ordenes/1/lista", kitchen, nil); w.Code != http.StatusConflict {
		t.Errorf("mark ready twice = %d, want 409", w.Code)
	}
	if w, _ := s.do(http.MethodPut, "/api/ordenes/99/lista", kitchen, nil); w.Code != http.StatusNotFound {
		t.Errorf("mark unknown = %d, want 404", w.Code)
	}
	if w, _ := s.do(http.MethodGet, "/api/ordenes/abc", cashier, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad id = %d, want 400", w.Code)
	}

	if w, _ := s.do(http.MethodPost, "/api/ventas/reset", admin, nil); w.Code != http.StatusOK {
		t.Fatalf("reset = %d", w.Code)
	}
	w, env = s.do(http.MethodPost, "/api/ordenes", cashier, order)
	if w.Code != http.StatusCreated {
		t.Fatalf("create after reset = %d %s", w.Code, env.Error)
	}
	json.Unmarshal(env.Data, &created)
	if created.ID != 1 {
		t.Errorf("id after reset = %d, want 1", created.ID)
	}
}

func TestConfigCurrencyDrivesTax(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin", "admin")

	w, env := s.do(http.MethodPost, "/api/config", admin, map[string]string{"name": "Chapina", "currency": "GTQ", "language": "es"})
	if w.Code != http.StatusOK {
		t.Fatalf("update config = %d %s", w.Code, env.Error)
	}
	if w, _ := s.do(http.MethodPost, "/api/config", admin, map[string]string{"name": "X", "currency": "quetzal"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad currency = %d, want 400", w.Code)
	}

	_, env = s.do(http.MethodPost, "/api/ordenes", admin, map[string]any{"items": []map[string]any{
		{"nombre": "Pepian", "precio": 100, "impuesto_incluido": false},
	}})
	var order struct {
		ISV   float64 `json:"isv"`
		Total float64 `json:"total"`
	}
	json.Unmarshal(env.Data, &order)
	if order.ISV < 11.999 || order.ISV > 12.001 || order.Total < 111.999 || order.Total > 112.001 {
		t.Errorf("order = %+v, want isv 12 total 112", order)
	}
}

func TestUserAdministration(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin", "admin")
	s.createUser(admin, "caja1", "caja")

	if w, _ := s.do(http.MethodPost, "/api/usuarios", admin, map[string]string{"username": "caja1", "password": "1234", "role": "caja"}); w.Code != http.StatusConflict {
		t.Errorf("duplicate = %d, want 409", w.Code)
	}
	if w, _ := s.do(http.MethodPost, "/api/usuarios", admin, map[string]string{"username": "mesero", "password": "1234", "role": "mesero"}); w.Code != http.StatusBadRequest {
		t.Errorf("bad role = %d, want 400", w.Code)
	}
	if w, _ := s.do(http.MethodDelete, "/api/usuarios/1", admin, nil); w.Code != http.StatusBadRequest {
		t.Errorf("self delete = %d, want 400", w.Code)
	}
	if w, _ := s.do(http.MethodDelete, "/api/usuarios/2", admin, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete = %d, want 204", w.Code)
	}
}

func TestPageGuard(t *testing.T) {
	s := newServer(t)
	admin := s.login("admin", "admin")
	s.createUser(admin, "cocina1", "cocina")
	kitchen := s.login("cocina1", "1234")

	w, _ := s.do(http.MethodGet, "/cocina.html", "", nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login.html" {
		t.Errorf("anonymous = %d %q, want 302 /login.html", w.Code, w.Header().Get("Location"))
	}
	if w, _ := s.do(http.MethodGet, "/admin.html", kitchen, nil); w.Code != http.StatusForbidden {
		t.Errorf("kitchen on admin page = %d, want 403", w.Code)
	}
	if w, _ := s.do(http.MethodGet, "/cocina.html", kitchen, nil); w.Code != http.StatusOK || w.Body.String() != "<html>cocina.html</html>" {
		t.Errorf("kitchen page = %d %q", w.Code, w.Body)
	}
	if w, _ := s.do(http.MethodGet, "/login.html", "", nil); w.Code != http.StatusOK {
		t.Errorf("login page = %d, want 200", w.Code)
	}
}
