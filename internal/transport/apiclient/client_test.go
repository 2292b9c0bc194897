package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/transport/apiclient"
	"github.com/Gunvolt24/fastfood_storefront/pkg/ctxmeta"
	"github.com/shopspring/decimal"
)

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func testConfig(baseURL string) apiclient.Config {
	return apiclient.Config{
		BaseURL:       baseURL + "/",
		ProductsPath:  "/api/public/produtos",
		OrdersPath:    "/api/public/pedidos",
		CustomersPath: "/api/public/clientes",
		HealthPath:    "/health",
		Timeout:       2 * time.Second,
	}
}

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(testConfig(srv.URL), noopLogger{})
}

func TestListProducts_NormalizesBothSchemas(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/public/produtos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `[
			{"id":"p1","nome":"X-Burger","descricao":"Pão e carne","preco":15.9,"categoria":"Lanches"},
			{"id":2,"name":"Soda","price":"5.00","category":"drinks","available":true},
			{"id":"p3","nome":"Sorvete","preco":7,"disponivel":false}
		]`)
	})

	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("unavailable product must be dropped, got %+v", products)
	}
	first, second := products[0], products[1]
	if first.ID != "p1" || first.Name != "X-Burger" || first.Description != "Pão e carne" || first.Category != "lanches" {
		t.Fatalf("unexpected pt product: %+v", first)
	}
	if !first.UnitPrice.Equal(decimal.RequireFromString("15.9")) {
		t.Fatalf("price = %s, want 15.9", first.UnitPrice)
	}
	if second.ID != "2" || second.Name != "Soda" || !second.UnitPrice.Equal(decimal.RequireFromString("5")) {
		t.Fatalf("unexpected en product: %+v", second)
	}
}

func TestCreateOrder_SendsPayloadAndRequestID(t *testing.T) {
	var got map[string]any
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/public/pedidos" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-Request-ID") != "rid-1" {
			t.Errorf("X-Request-ID = %q, want rid-1", r.Header.Get("X-Request-ID"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"orderId":"abc123","status":"pending"}`)
	})

	price := decimal.RequireFromString("15.9")
	req := domain.OrderRequest{Lines: []domain.OrderLine{{ProductID: "p1", Quantity: 2, UnitPrice: &price}}}
	ctx := ctxmeta.WithRequestID(context.Background(), "rid-1")

	conf, err := c.CreateOrder(ctx, req)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if conf.OrderID != "abc123" || conf.Status != "pending" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}
	lines, _ := got["lines"].([]any)
	if len(lines) != 1 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	line, _ := lines[0].(map[string]any)
	if line["productId"] != "p1" || line["quantity"] != float64(2) || line["unitPrice"] != "15.9" {
		t.Fatalf("unexpected line payload: %+v", line)
	}
}

func TestCreateOrder_AcceptsPlainIDAndPortugueseStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":"9f1c","status":"pendente"}`)
	})

	conf, err := c.CreateOrder(context.Background(), domain.OrderRequest{})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if conf.OrderID != "9f1c" || conf.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}
}

func TestCreateOrder_Non2xx_IsNetworkError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.CreateOrder(context.Background(), domain.OrderRequest{})
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var se *apiclient.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError || se.Body != "boom" {
		t.Fatalf("expected StatusError 500, got %#v", se)
	}
	if domain.KindOf(err) != domain.KindNetwork {
		t.Fatalf("kind = %s", domain.KindOf(err))
	}
}

func TestCreateOrder_BadJSON_IsNetworkError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})
	if _, err := c.CreateOrder(context.Background(), domain.OrderRequest{}); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestCreateOrder_ContextDeadline_IsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	c := apiclient.New(testConfig(srv.URL), noopLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.CreateOrder(ctx, domain.OrderRequest{})
	if !errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestCreateOrder_ConnectionRefused_IsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := apiclient.New(testConfig(url), noopLogger{})
	_, err := c.CreateOrder(context.Background(), domain.OrderRequest{})
	if !errors.Is(err, domain.ErrNetwork) || errors.Is(err, domain.ErrTimeout) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestCreateCustomer(t *testing.T) {
	var got map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/clientes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"id":42}`)
	})

	ref, err := c.CreateCustomer(context.Background(), domain.Customer{Name: "Ana", Email: "ana@example.com", CPF: "000.000.000-00"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if ref.CustomerID != "42" {
		t.Fatalf("CustomerID = %q, want 42", ref.CustomerID)
	}
	if got["nome"] != "Ana" || got["email"] != "ana@example.com" || got["cpf"] != "000.000.000-00" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestCreateCustomer_NoID(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	if _, err := c.CreateCustomer(context.Background(), domain.Customer{Name: "Ana"}); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestOrderStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public/pedidos/abc123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"status":"Preparando"}`)
	})

	conf, err := c.OrderStatus(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("OrderStatus: %v", err)
	}
	if conf.OrderID != "abc123" || conf.Status != domain.OrderStatusPreparing {
		t.Fatalf("unexpected status: %+v", conf)
	}
}

func TestOrderStatus_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := c.OrderStatus(context.Background(), "missing")
	var se *apiclient.StatusError
	if !errors.As(err, &se) || !se.NotFound() {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	up := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})
	if err := up.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}

	down := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if err := down.Health(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}
