package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"taller/internal/config"
	"taller/management/database"
	"taller/management/dto"
	"taller/management/server/middleware"
	"taller/management/vo"
	"taller/pkg/terrors"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Listen: ":0", Name: "taller", Mode: gin.TestMode},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// recordingOrders records every plate and auth context it receives.
type recordingOrders struct {
	mu     sync.Mutex
	plates []string
	auth   []middleware.AuthContext
	panics bool
}

func (r *recordingOrders) ListByPlate(ctx context.Context, plate string) ([]*vo.OrderVo, error) {
	if r.panics {
		panic("controller exploded")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plates = append(r.plates, plate)
	if a, ok := middleware.AuthFromContext(ctx); ok {
		r.auth = append(r.auth, a)
	}
	return []*vo.OrderVo{{ID: "o1", Plate: plate}}, nil
}

func (r *recordingOrders) Get(context.Context, string) (*vo.OrderVo, error) {
	return nil, terrors.ErrOrderNotFound
}

func (r *recordingOrders) List(context.Context, *dto.PageRequest) (*dto.PageResult[*vo.OrderVo], error) {
	return &dto.PageResult[*vo.OrderVo]{}, nil
}

func (r *recordingOrders) Create(context.Context, *dto.OrderDto) (*vo.OrderVo, error) {
	return nil, terrors.ErrPlateRequired
}

func (r *recordingOrders) UpdateStatus(context.Context, string, string) (*vo.OrderVo, error) {
	return nil, terrors.ErrInvalidStatus
}

func (r *recordingOrders) Delete(context.Context, string) error {
	return terrors.ErrOrderNotFound
}

func (r *recordingOrders) CountByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}

type nopBudgets struct{}

func (nopBudgets) Get(context.Context, string) (*vo.BudgetVo, error) {
	return nil, terrors.ErrBudgetNotFound
}

func (nopBudgets) List(context.Context, *dto.PageRequest) (*dto.PageResult[*vo.BudgetVo], error) {
	return &dto.PageResult[*vo.BudgetVo]{}, nil
}

func (nopBudgets) Create(context.Context, *dto.BudgetDto) (*vo.BudgetVo, error) {
	return nil, terrors.ErrEmptyBudget
}

func (nopBudgets) UpdateStatus(context.Context, string, string) (*vo.BudgetVo, error) {
	return nil, terrors.ErrBudgetNotFound
}

func (nopBudgets) Delete(context.Context, string) error {
	return terrors.ErrBudgetNotFound
}

func newRecordingServer(t *testing.T) (*Server, *recordingOrders) {
	t.Helper()
	orders := &recordingOrders{}
	s, err := NewServer(&ServerConfig{
		Cfg:              testConfig(),
		OrderController:  orders,
		BudgetController: nopBudgets{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, orders
}

func newDBServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	if err != nil {
		t.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	s, err := NewServer(&ServerConfig{Cfg: testConfig(), DB: db})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestByPlate_PlateReachesControllerUnchanged(t *testing.T) {
	s, orders := newRecordingServer(t)

	plates := []string{
		"ABC123",
		"abc123",
		"  ABC 123  ",
		"A-B.C_1~2",
		"ñandú",
		"x",
		strings.Repeat("9", 64),
		"<script>",
		"AB/12",
		"ABC123/",
		"/ABC123",
		"50%",
		"a%2Fb",
	}
	for _, p := range plates {
		w := do(s, http.MethodGet, "/public/orders/by-plate/"+url.PathEscape(p), "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("plate %q: status = %d, dispatcher must not reject", p, w.Code)
		}
	}

	if len(orders.plates) != len(plates) {
		t.Fatalf("controller called %d times, want %d", len(orders.plates), len(plates))
	}
	for i, p := range plates {
		if orders.plates[i] != p {
			t.Fatalf("controller got %q, want %q", orders.plates[i], p)
		}
	}

	// an unescaped trailing slash is never redirected to a trimmed plate
	if w := do(s, http.MethodGet, "/public/orders/by-plate/ABC123/", "", nil); w.Code == http.StatusMovedPermanently {
		t.Fatalf("trailing slash redirected to %q", w.Header().Get("Location"))
	}
	if n := len(orders.plates); n != len(plates) {
		t.Fatalf("controller saw a rewritten plate: %q", orders.plates[n-1])
	}
}

func TestByPlate_AuthContextAlwaysAttached(t *testing.T) {
	s, orders := newRecordingServer(t)

	headerSets := []map[string]string{
		nil,
		{"x-user-id": "1"},
		{"x-role": "admin"},
		{"x-user-id": "2", "x-role": "mechanic", "Authorization": "Bearer nope"},
	}
	for _, h := range headerSets {
		if w := do(s, http.MethodGet, "/public/orders/by-plate/ABC123", "", h); w.Code != http.StatusOK {
			t.Fatalf("headers %v: status = %d", h, w.Code)
		}
	}
	if len(orders.auth) != len(headerSets) {
		t.Fatalf("auth context seen %d times, want %d", len(orders.auth), len(headerSets))
	}
	for _, a := range orders.auth {
		if a.Method != middleware.MethodServiceKey {
			t.Fatalf("auth method = %q", a.Method)
		}
	}
}

func TestByPlate_PanicReachesRecovery(t *testing.T) {
	s, orders := newRecordingServer(t)
	orders.panics = true

	if w := do(s, http.MethodGet, "/public/orders/by-plate/ABC123", "", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestErrorsMapToStatus(t *testing.T) {
	s, _ := newRecordingServer(t)

	cases := []struct {
		method, path, body string
		code               int
	}{
		{http.MethodGet, "/api/v1/orders/missing", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/orders", `{"plate":""}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/orders", `{not json`, http.StatusBadRequest},
		{http.MethodPut, "/api/v1/orders/o1/status", `{"status":"lost"}`, http.StatusBadRequest},
		{http.MethodPut, "/api/v1/orders/o1/status", `{}`, http.StatusBadRequest},
		{http.MethodDelete, "/api/v1/orders/o1", "", http.StatusNotFound},
		{http.MethodGet, "/public/budgets/b1", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/budgets", `{"customer_name":"Ana"}`, http.StatusBadRequest},
		{http.MethodGet, "/api/v1/budgets", "", http.StatusOK},
	}
	for _, tc := range cases {
		w := do(s, tc.method, tc.path, tc.body, nil)
		if w.Code != tc.code {
			t.Fatalf("%s %s: status = %d, want %d", tc.method, tc.path, w.Code, tc.code)
		}
		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s %s: body is not an envelope: %s", tc.method, tc.path, w.Body.String())
		}
		if resp.Code != tc.code {
			t.Fatalf("%s %s: envelope code = %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestOrdersEndToEnd(t *testing.T) {
	s := newDBServer(t)

	w := do(s, http.MethodPost, "/api/v1/orders",
		`{"plate":"ABC123","customer_name":"Ana","phone":"600111222","vehicle_model":"Vespa GTS"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data vo.OrderVo `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Data.ID == "" || created.Data.Status != "received" {
		t.Fatalf("created = %+v", created.Data)
	}

	w = do(s, http.MethodGet, "/public/orders/by-plate/ABC123", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("lookup status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "600111222") || strings.Contains(body, "Ana") {
		t.Fatalf("public lookup leaks customer data: %s", body)
	}
	if !strings.Contains(body, "Vespa GTS") {
		t.Fatalf("lookup missing order: %s", body)
	}

	if w := do(s, http.MethodGet, "/public/orders/by-plate/abc123", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("plate match must be exact, status = %d", w.Code)
	}

	w = do(s, http.MethodPut, "/api/v1/orders/"+created.Data.ID+"/status", `{"status":"ready"}`, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ready"`) {
		t.Fatalf("update status = %d: %s", w.Code, w.Body.String())
	}

	if w := do(s, http.MethodDelete, "/api/v1/orders/"+created.Data.ID, "", nil); w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := do(s, http.MethodGet, "/public/orders/by-plate/ABC123", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("lookup after delete status = %d", w.Code)
	}
}

func TestBudgetsEndToEnd(t *testing.T) {
	s := newDBServer(t)
	s.pages.Mount()

	w := do(s, http.MethodPost, "/api/v1/budgets",
		`{"customer_name":"Luis","plate":"XYZ9","items":[{"description":"Pastillas","quantity":2,"unit_price":1500}]}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Data vo.BudgetVo `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Data.Total != 3000 {
		t.Fatalf("total = %d", created.Data.Total)
	}

	if w := do(s, http.MethodGet, "/public/budgets/"+created.Data.ID, "", nil); w.Code != http.StatusOK {
		t.Fatalf("public budget status = %d", w.Code)
	}

	page := do(s, http.MethodGet, "/presupuesto/"+created.Data.ID, "", nil)
	if page.Code != http.StatusOK || !strings.Contains(page.Body.String(), "30,00 €") {
		t.Fatalf("budget page = %d: %s", page.Code, page.Body.String())
	}
}

func TestPagesMountedOnStart(t *testing.T) {
	s, _ := newRecordingServer(t)

	if body := do(s, http.MethodGet, "/", "", nil).Body.String(); !strings.Contains(body, `data-route="spinner"`) {
		t.Fatal("pages should boot with the spinner")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	for i := 0; !s.pages.Ready(); i++ {
		if i == 500 {
			t.Fatal("pages never became ready")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if body := do(s, http.MethodGet, "/", "", nil).Body.String(); !strings.Contains(body, `data-route="storefront"`) {
		t.Fatal("storefront not served after start")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestOperationalRoutes(t *testing.T) {
	s, _ := newRecordingServer(t)

	if w := do(s, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}
	if w := do(s, http.MethodGet, "/version", "", nil); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "version") {
		t.Fatalf("version = %d: %s", w.Code, w.Body.String())
	}

	do(s, http.MethodGet, "/public/orders/by-plate/ABC123", "", nil)
	w := do(s, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `route="/public/orders/by-plate/:plate"`) {
		t.Fatalf("request not counted under its route pattern:\n%s", w.Body.String())
	}

	w = do(s, http.MethodOptions, "/api/v1/orders", "", map[string]string{"Origin": "http://localhost:5173"})
	if w.Code != http.StatusNoContent || w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("preflight = %d, request id %q", w.Code, w.Header().Get(middleware.RequestIDHeader))
	}
}
