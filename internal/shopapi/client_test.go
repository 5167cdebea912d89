package shopapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tkb-shop/storefront/internal/domain"
)

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]domain.Product{
			{ID: 1, Name: "Robe soie", Price: 10000, Category: "robes"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, func() string { return "tok-1" })
	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Robe soie", products[0].Name)
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	_, err := c.GetProduct(context.Background(), 42)
	assert.Error(t, err)
}

func TestCreateOrderSendsIdempotencyKey(t *testing.T) {
	var got domain.OrderRequest
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		key = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	req := domain.OrderRequest{
		UserID:      "u-12",
		ProductID:   1,
		ProductName: "Robe soie",
		Price:       10000,
		Quantity:    2,
		TotalPrice:  20000,
		Address:     "Rue des Jardins, Abidjan (Tél: 0701020304)",
		Status:      domain.OrderStatusPaid,
		PaymentID:   "TX-123",
	}
	require.NoError(t, c.CreateOrder(context.Background(), "idem-1", req))
	assert.Equal(t, "idem-1", key)
	assert.Equal(t, req, got)
}

func TestCreateOrderServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	err := c.CreateOrder(context.Background(), "idem-1", domain.OrderRequest{})
	assert.Error(t, err)
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	_, err := c.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestQuoteOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/quote", r.URL.Path)
		var body struct {
			Items []domain.QuoteItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.Equal(t, "Unique", body.Items[0].Size)
		_ = json.NewEncoder(w).Encode(map[string]float64{"totalAmount": 25000})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, nil)
	total, err := c.QuoteOrder(context.Background(), []domain.QuoteItem{
		{Product: "1", Quantity: 2, Size: "Unique"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(25000), total)
}
