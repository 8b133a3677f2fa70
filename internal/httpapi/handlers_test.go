package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ketoan/backend/internal/cache"
	"ketoan/backend/internal/domain"
	"ketoan/backend/internal/service"
	"ketoan/backend/internal/store/memory"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	repo := memory.NewSeeded()
	svc := service.New(repo, cache.NoopReportCache{}, time.Second)
	auth := NewAuthManager("unit-test-secret-0123456789abcdef", time.Hour, repo)
	return New(svc, auth, "http://127.0.0.1:3000").Handler()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func login(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()
	rec, env := doRequest(t, handler, http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{
		Username: username,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s failed: %d %s", username, rec.Code, rec.Body.String())
	}
	var resp domain.LoginResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected a token")
	}
	return resp.AccessToken
}

func TestLoginSuccess(t *testing.T) {
	handler := newTestHandler(t)

	rec, env := doRequest(t, handler, http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope")
	}

	var resp domain.LoginResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Role != "admin" || resp.AccessToken == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	handler := newTestHandler(t)

	rec, env := doRequest(t, handler, http.MethodPost, "/api/v1/auth/login", "", domain.LoginRequest{
		Username: "admin",
		Password: "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env.Success || env.Error == "" {
		t.Fatalf("expected error envelope, got %+v", env)
	}
}

func TestLoginRateLimited(t *testing.T) {
	handler := newTestHandler(t)

	body := domain.LoginRequest{Username: "admin", Password: "wrong-password"}
	for i := 0; i < 5; i++ {
		rec, _ := doRequest(t, handler, http.MethodPost, "/api/v1/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}

	rec, _ := doRequest(t, handler, http.MethodPost, "/api/v1/auth/login", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exhausting attempts, got %d", rec.Code)
	}
}

func TestRequestWithoutTokenUnauthorized(t *testing.T) {
	handler := newTestHandler(t)

	rec, _ := doRequest(t, handler, http.MethodGet, "/api/v1/products", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUsersEndpointRequiresAdminRole(t *testing.T) {
	handler := newTestHandler(t)

	accountantToken := login(t, handler, "ketoan", "ketoan123")
	rec, _ := doRequest(t, handler, http.MethodGet, "/api/v1/users", accountantToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for accountant, got %d", rec.Code)
	}

	adminToken := login(t, handler, "admin", "admin123")
	rec, env := doRequest(t, handler, http.MethodGet, "/api/v1/users", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
	var users []domain.APIUser
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) < 2 {
		t.Fatalf("expected the seeded accounts, got %+v", users)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	rec, env := doRequest(t, handler, http.MethodPost, "/api/v1/orders", token, domain.OrderCreateRequest{
		Code:         "DH-001",
		CustomerName: "Khách A",
		CatalogCode:  "SP001",
		Quantity:     10,
		Status:       "hoàn thành",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var order domain.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.TotalAmount != 650000 {
		t.Fatalf("expected total 650000, got %d", order.TotalAmount)
	}

	rec, env = doRequest(t, handler, http.MethodGet, "/api/v1/products/SP001", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var product domain.Product
	if err := json.Unmarshal(env.Data, &product); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if product.Quantity != 40 {
		t.Fatalf("expected on-hand 40 after the order, got %d", product.Quantity)
	}

	cancelled := "đã hủy"
	rec, _ = doRequest(t, handler, http.MethodPut, "/api/v1/orders/"+order.ID, token, domain.OrderUpdateRequest{
		Status: &cancelled,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = doRequest(t, handler, http.MethodGet, "/api/v1/products/SP001", token, nil)
	if err := json.Unmarshal(env.Data, &product); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if product.Quantity != 50 {
		t.Fatalf("expected on-hand restored to 50, got %d", product.Quantity)
	}
}

func TestDuplicateOrderCodeConflict(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	body := domain.OrderCreateRequest{Code: "DH-001", CatalogCode: "SP001", Quantity: 1, Status: "hoàn thành"}
	if rec, _ := doRequest(t, handler, http.MethodPost, "/api/v1/orders", token, body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", rec.Code)
	}

	rec, env := doRequest(t, handler, http.MethodPost, "/api/v1/orders", token, body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env.Success {
		t.Fatalf("expected error envelope")
	}
}

func TestInsufficientStockConflict(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	rec, _ := doRequest(t, handler, http.MethodPost, "/api/v1/orders", token, domain.OrderCreateRequest{
		Code:        "DH-001",
		CatalogCode: "SP001",
		Quantity:    999,
		Status:      "hoàn thành",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRevenueByDateBadRange(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	rec, env := doRequest(t, handler, http.MethodGet,
		"/api/v1/reports/revenue-by-date?from_date=2026-02-10&to_date=2026-02-01", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Success {
		t.Fatalf("expected error envelope")
	}
}

func TestPaymentStatusAllocation(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	for i, amount := range []int64{100000, 200000} {
		rec, _ := doRequest(t, handler, http.MethodPost, "/api/v1/invoices", token, domain.InvoiceCreateRequest{
			Number:       "HD-" + string(rune('1'+i)),
			CustomerName: "Khách A",
			TotalAmount:  amount,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create invoice: expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec, env := doRequest(t, handler, http.MethodPut, "/api/v1/reports/payment-status", token, domain.PaymentRequest{
		CustomerName: "Khách A",
		PaidAmount:   150000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result domain.PaymentResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.TotalBilled != 300000 || result.TotalPaid != 150000 || result.Remaining != 150000 {
		t.Fatalf("unexpected allocation result: %+v", result)
	}
}

func TestUnknownJSONFieldRejected(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products",
		strings.NewReader(`{"code":"SP099","name":"x","bogus_field":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec, env := doRequest(t, handler, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["ok"] != true {
		t.Fatalf("expected ok=true, got %+v", health)
	}
}

func TestPreflightReturnsNoContent(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://127.0.0.1:3000" {
		t.Fatalf("expected CORS origin header, got %q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)
	token := login(t, handler, "admin", "admin123")

	rec, _ := doRequest(t, handler, http.MethodDelete, "/api/v1/products", token, nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
