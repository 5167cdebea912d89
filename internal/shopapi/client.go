package shopapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"github.com/tkb-shop/storefront/internal/domain"
	"go.uber.org/zap"
)

// ErrUnauthorized mirrors the web client's 401 interceptor: callers
// react by clearing stored credentials.
var ErrUnauthorized = errors.New("shopapi: unauthorized")

// TokenSource supplies the current bearer token, empty when anonymous.
type TokenSource func() string

// Client consumes the fixed REST contract of the shop backend. It
// implements no retry of its own; checkout owns retry semantics.
type Client struct {
	baseURL string
	timeout time.Duration
	token   TokenSource
}

func NewClient(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{baseURL: baseURL, timeout: timeout, token: token}
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	code := 0
	err := gout.GET(c.baseURL+"/api/products").
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(c.headers("")).
		Code(&code).
		BindJSON(&products).
		Do()
	if err := c.apiError(err, code, "list products"); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	code := 0
	err := gout.GET(fmt.Sprintf("%s/api/products/%d", c.baseURL, id)).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(c.headers("")).
		Code(&code).
		BindJSON(&product).
		Do()
	if code == http.StatusNotFound {
		return nil, errors.Errorf("product %d not found", id)
	}
	if err := c.apiError(err, code, "get product"); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateOrder posts one order line. The idempotency key travels as a
// header so a resubmitted line cannot be placed twice server-side.
func (c *Client) CreateOrder(ctx context.Context, idempotencyKey string, req domain.OrderRequest) error {
	code := 0
	err := gout.POST(c.baseURL+"/api/orders").
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(c.headers(idempotencyKey)).
		SetJSON(req).
		Code(&code).
		Do()
	return c.apiError(err, code, "create order")
}

// QuoteOrder asks the backend to re-price the cart before payment.
func (c *Client) QuoteOrder(ctx context.Context, items []domain.QuoteItem) (float64, error) {
	var resp struct {
		TotalAmount float64 `json:"totalAmount"`
	}
	code := 0
	err := gout.POST(c.baseURL+"/api/orders/quote").
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetHeader(c.headers("")).
		SetJSON(gout.H{"items": items}).
		Code(&code).
		BindJSON(&resp).
		Do()
	if err := c.apiError(err, code, "quote order"); err != nil {
		return 0, err
	}
	return resp.TotalAmount, nil
}

func (c *Client) headers(idempotencyKey string) gout.H {
	h := gout.H{"Content-Type": "application/json"}
	if c.token != nil {
		if t := c.token(); t != "" {
			h["Authorization"] = "Bearer " + t
		}
	}
	if idempotencyKey != "" {
		h["Idempotency-Key"] = idempotencyKey
	}
	return h
}

func (c *Client) apiError(err error, code int, op string) error {
	if code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if err != nil {
		zap.S().Warnf("shopapi: %s failed: %v", op, err)
		return errors.Wrap(err, op)
	}
	if code < 200 || code > 299 {
		return errors.Errorf("%s: backend returned %d", op, code)
	}
	return nil
}
