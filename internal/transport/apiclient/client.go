// Пакет apiclient — HTTP-клиент удалённого API витрины: каталог, заказы, клиенты, health.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/fastfood_storefront/internal/domain"
	"github.com/Gunvolt24/fastfood_storefront/internal/ports"
	"github.com/Gunvolt24/fastfood_storefront/pkg/httpx"
	"github.com/Gunvolt24/fastfood_storefront/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	_ ports.CatalogClient   = (*Client)(nil)
	_ ports.OrderGateway    = (*Client)(nil)
	_ ports.CustomerGateway = (*Client)(nil)
)

// Имена эндпоинтов для метрик и логов.
const (
	endpointProducts  = "products"
	endpointOrders    = "orders"
	endpointOrder     = "order_status"
	endpointCustomers = "customers"
	endpointHealth    = "health"
)

const maxBodyBytes = 4 << 20

// StatusError — ответ API с кодом вне 2xx. Для errors.Is считается domain.ErrNetwork.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Code)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool { return target == domain.ErrNetwork }

// NotFound — API ответил 404.
func (e *StatusError) NotFound() bool { return e.Code == http.StatusNotFound }

// Config — адрес API и пути эндпоинтов.
type Config struct {
	BaseURL       string
	ProductsPath  string
	OrdersPath    string
	CustomersPath string
	HealthPath    string
	Timeout       time.Duration
}

// Client — клиент API. Исходящие запросы трассируются (otelhttp) и несут X-Request-ID.
type Client struct {
	http *http.Client
	cfg  Config
	log  ports.Logger
}

// New — клиент с трассирующим транспортом.
func New(cfg Config, log ports.Logger) *Client {
	hc := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return NewWithHTTPClient(cfg, hc, log)
}

// NewWithHTTPClient — клиент поверх готового *http.Client (тесты, свои транспорты).
func NewWithHTTPClient(cfg Config, hc *http.Client, log ports.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{http: hc, cfg: cfg, log: log}
}

// ListProducts — весь каталог. Товары, снятые с продажи, отбрасываются.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := c.do(ctx, endpointProducts, http.MethodGet, c.cfg.ProductsPath, nil, &dtos); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		p, available := d.toDomain()
		if !available {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// CreateOrder — POST заказа; идентификатор заказа назначает сервис.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	var dto confirmationDTO
	if err := c.do(ctx, endpointOrders, http.MethodPost, c.cfg.OrdersPath, req, &dto); err != nil {
		return domain.OrderConfirmation{}, err
	}
	return dto.toDomain(), nil
}

// OrderStatus — текущий статус заказа по id.
func (c *Client) OrderStatus(ctx context.Context, orderID string) (domain.OrderConfirmation, error) {
	path := strings.TrimRight(c.cfg.OrdersPath, "/") + "/" + url.PathEscape(orderID)
	var dto confirmationDTO
	if err := c.do(ctx, endpointOrder, http.MethodGet, path, nil, &dto); err != nil {
		return domain.OrderConfirmation{}, err
	}
	conf := dto.toDomain()
	if conf.OrderID == "" {
		conf.OrderID = orderID
	}
	return conf, nil
}

// CreateCustomer — создать (или получить существующего) клиента.
func (c *Client) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.CustomerRef, error) {
	body := customerRequest{Nome: customer.Name, Email: customer.Email, CPF: customer.CPF}
	var dto customerDTO
	if err := c.do(ctx, endpointCustomers, http.MethodPost, c.cfg.CustomersPath, body, &dto); err != nil {
		return domain.CustomerRef{}, err
	}
	ref := dto.toDomain()
	if ref.CustomerID == "" {
		return domain.CustomerRef{}, fmt.Errorf("%w: customer response without id", domain.ErrNetwork)
	}
	return ref, nil
}

// Health — nil, если API ответил 2xx.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, endpointHealth, http.MethodGet, c.cfg.HealthPath, nil, nil)
}

// do — один запрос. Ошибки: дедлайн/таймаут → ErrTimeout, всё прочее → ErrNetwork.
func (c *Client) do(ctx context.Context, endpoint, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", domain.ErrNetwork, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rid := httpx.PropagateRequestID(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		c.log.Warnf(ctx, "api %s %s failed request_id=%s err=%v", method, endpoint, rid, err)
		return transportError(ctx, endpoint, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.APIRequestDuration.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if readErr != nil {
		return transportError(ctx, endpoint, readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnf(ctx, "api %s %s status=%d request_id=%s", method, endpoint, resp.StatusCode, rid)
		return fmt.Errorf("%s: %w", endpoint, &StatusError{Code: resp.StatusCode, Body: snippet(raw)})
	}

	c.log.Debugf(ctx, "api %s %s status=%d took=%s", method, endpoint, resp.StatusCode, time.Since(start))
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if out != nil {
			return fmt.Errorf("%w: %s: empty response body", domain.ErrNetwork, endpoint)
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", domain.ErrNetwork, endpoint, err)
	}
	return nil
}

func transportError(ctx context.Context, endpoint string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %w", domain.ErrTimeout, endpoint, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrNetwork, endpoint, err)
}
