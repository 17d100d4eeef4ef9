package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	adapthttp "github.com/Geovany-dotcom/Backend2/internal/adapter/http"
	"github.com/Geovany-dotcom/Backend2/internal/adapter/memory"
	"github.com/Geovany-dotcom/Backend2/internal/app"
	"github.com/Geovany-dotcom/Backend2/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// newTestServer wires the full HTTP surface against the in-memory adapter
// with one administrator (root/rootpass) provisioned.
func newTestServer(t *testing.T) (http.Handler, *memory.DB) {
	t.Helper()

	db := memory.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("rootpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	db.SeedAdministrator("root", string(hash))

	authSvc := app.NewAuthService(db, db.NewAdminRepo(), db.NewSessionRepo(), db.NewClientSessionRepo())
	catalogSvc := app.NewCatalogService(db.NewProductRepo())
	orderSvc := app.NewOrderService(db.NewProductRepo(), db.NewOrderRepo())
	reportSvc := app.NewReportService(db.NewReportRepo(), db.NewProductRepo(), db.NewClientSessionRepo())

	srv := adapthttp.New(authSvc, catalogSvc, orderSvc, reportSvc, t.TempDir(), t.TempDir())
	return srv.Handler(), db
}

func registerCustomer(t *testing.T, h http.Handler, username string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"name":     "Ana",
		"surname":  "Lopez",
		"email":    username + "@example.com",
		"username": username,
		"password": "secret123",
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cliente/registrar", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func login(t *testing.T, h http.Handler, username, password string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("login: no session cookie set")
	return nil
}

func seedProduct(t *testing.T, db *memory.DB, name string, price float64, stock int) *domain.Product {
	t.Helper()

	p, err := db.NewProductRepo().Create(context.Background(), name, price, stock, nil)
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestLogin_ReportsRole(t *testing.T) {
	h, _ := newTestServer(t)
	registerCustomer(t, h, "ana")

	body, _ := json.Marshal(map[string]string{"username": "ana", "password": "secret123"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Role != "customer" {
		t.Errorf("expected role customer, got %s", resp.Role)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	h, _ := newTestServer(t)
	registerCustomer(t, h, "ana")

	body, _ := json.Marshal(map[string]string{"username": "ana", "password": "wrong"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestProtectedRoute_RedirectsWithoutSession(t *testing.T) {
	h, _ := newTestServer(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mis-pedidos", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/CargaLogin.html" {
		t.Errorf("expected redirect to login page, got %s", loc)
	}
}

func TestAdminRoute_ForbiddenForCustomer(t *testing.T) {
	h, _ := newTestServer(t)
	registerCustomer(t, h, "ana")
	cookie := login(t, h, "ana", "secret123")

	req := httptest.NewRequest(http.MethodGet, "/ventas", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestCustomerRoute_AccessGranted(t *testing.T) {
	h, _ := newTestServer(t)
	registerCustomer(t, h, "ana")
	cookie := login(t, h, "ana", "secret123")

	req := httptest.NewRequest(http.MethodGet, "/user-page", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProduct_Multipart(t *testing.T) {
	h, _ := newTestServer(t)
	cookie := login(t, h, "root", "rootpass")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "Laptop")
	_ = mw.WriteField("price", "1500")
	_ = mw.WriteField("stock", "5")
	fw, _ := mw.CreateFormFile("image", "laptop.png")
	_, _ = fw.Write([]byte("not-really-a-png"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/productos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var p struct {
		ID    int64   `json:"id"`
		Name  string  `json:"name"`
		Image *string `json:"image"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Laptop" {
		t.Errorf("expected name Laptop, got %s", p.Name)
	}
	if p.Image == nil {
		t.Error("expected an image URL")
	}
}

func TestPurchaseAndCancel_Flow(t *testing.T) {
	h, db := newTestServer(t)
	registerCustomer(t, h, "ana")
	cookie := login(t, h, "ana", "secret123")
	p := seedProduct(t, db, "Laptop", 1500, 5)

	body, _ := json.Marshal(map[string]any{"product_name": "Laptop", "quantity": 3})
	req := httptest.NewRequest(http.MethodPost, "/comprar-producto", bytes.NewReader(body))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		OrderID int64 `json:"order_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	got, err := db.NewProductRepo().GetByID(context.Background(), p.ID)
	if err != nil || got == nil {
		t.Fatalf("product lookup: %v", err)
	}
	if got.Stock != 2 {
		t.Errorf("expected stock 2 after purchase, got %d", got.Stock)
	}

	req = httptest.NewRequest(http.MethodDelete, "/pedido/"+strconv.FormatInt(resp.OrderID, 10), nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	got, _ = db.NewProductRepo().GetByID(context.Background(), p.ID)
	if got.Stock != 5 {
		t.Errorf("expected stock restored to 5, got %d", got.Stock)
	}
}

func TestPurchase_InsufficientStock(t *testing.T) {
	h, db := newTestServer(t)
	registerCustomer(t, h, "ana")
	cookie := login(t, h, "ana", "secret123")
	seedProduct(t, db, "Mouse", 20, 1)

	body, _ := json.Marshal(map[string]any{"product_name": "Mouse", "quantity": 2})
	req := httptest.NewRequest(http.MethodPost, "/comprar-producto", bytes.NewReader(body))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPurchase_UnknownProduct(t *testing.T) {
	h, _ := newTestServer(t)
	registerCustomer(t, h, "ana")
	cookie := login(t, h, "ana", "secret123")

	body, _ := json.Marshal(map[string]any{"product_name": "Nope", "quantity": 1})
	req := httptest.NewRequest(http.MethodPost, "/comprar-producto", bytes.NewReader(body))
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCancel_OtherCustomersOrder(t *testing.T) {
	h, db := newTestServer(t)
	registerCustomer(t, h, "ana")
	registerCustomer(t, h, "eva")
	anaCookie := login(t, h, "ana", "secret123")
	evaCookie := login(t, h, "eva", "secret123")
	seedProduct(t, db, "Laptop", 1500, 5)

	body, _ := json.Marshal(map[string]any{"product_name": "Laptop", "quantity": 1})
	req := httptest.NewRequest(http.MethodPost, "/comprar-producto", bytes.NewReader(body))
	req.AddCookie(anaCookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d", w.Code)
	}
	var resp struct {
		OrderID int64 `json:"order_id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	req = httptest.NewRequest(http.MethodDelete, "/pedido/"+strconv.FormatInt(resp.OrderID, 10), nil)
	req.AddCookie(evaCookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestTotalRevenue_AfterPurchase(t *testing.T) {
	h, db := newTestServer(t)
	registerCustomer(t, h, "ana")
	custCookie := login(t, h, "ana", "secret123")
	adminCookie := login(t, h, "root", "rootpass")
	seedProduct(t, db, "Laptop", 1500, 5)

	body, _ := json.Marshal(map[string]any{"product_name": "Laptop", "quantity": 2})
	req := httptest.NewRequest(http.MethodPost, "/comprar-producto", bytes.NewReader(body))
	req.AddCookie(custCookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("purchase: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/ganancia-total", nil)
	req.AddCookie(adminCookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Total float64 `json:"total_revenue"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3000 {
		t.Errorf("expected total 3000, got %v", resp.Total)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	h, _ := newTestServer(t)
	registerCustomer(t, h, "ana")
	cookie := login(t, h, "ana", "secret123")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/mis-pedidos", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusFound {
		t.Errorf("expected redirect after logout, got %d", w.Code)
	}
}

func TestListProducts_Public(t *testing.T) {
	h, db := newTestServer(t)
	seedProduct(t, db, "Laptop", 1500, 5)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/productos", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Laptop" {
		t.Errorf("unexpected listing: %s", w.Body.String())
	}
}
