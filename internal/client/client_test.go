package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/errs"
	"storefront/internal/models"
)

func fp(v float64) *float64 { return &v }

func TestEncodeQueryOmitsUnsetValues(t *testing.T) {
	v := EncodeQuery(models.ProductQuery{})
	assert.Empty(t, v.Encode())

	v = EncodeQuery(models.ProductQuery{
		RatingMin:   fp(4),
		PriceMax:    fp(49.5),
		Category:    "books",
		InStockOnly: true,
		SortBy:      "rating",
		SortOrder:   models.SortDesc,
		Page:        2,
		Limit:       10,
	})
	assert.Equal(t, "4", v.Get("ratingMin"))
	assert.Equal(t, "49.5", v.Get("priceMax"))
	assert.Equal(t, "", v.Get("priceMin"))
	assert.Equal(t, "true", v.Get("inStock"))
	assert.Equal(t, "2", v.Get("page"))
}

func TestListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "books", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"name":"Dune","price":12}],"totalPages":1,"total":1,"page":1,"limit":20}`))
	}))
	defer server.Close()

	c := New(server.URL + "/api/")
	page, err := c.ListProducts(context.Background(), models.ProductQuery{Category: "books"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalPages)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Dune", page.Products[0].Name)
}

func TestCreateProductSendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.ProductRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Pen", req.Name)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"Pen","price":100,"discount":20,"stock":true}`))
	}))
	defer server.Close()

	product, err := New(server.URL).CreateProduct(context.Background(), models.ProductRequest{Name: "Pen", Price: 100})

	require.NoError(t, err)
	assert.Equal(t, 20, product.Discount)
}

func TestErrorsMapToSentinels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"validation", http.StatusBadRequest, `{"error":"missing or invalid fields: name","fields":["name"]}`, errs.ErrValidation},
		{"not found", http.StatusNotFound, `{"error":"product not found"}`, errs.ErrNotFound},
		{"conflict", http.StatusConflict, `{"error":"conflicting record found"}`, errs.ErrConflict},
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid email or password"}`, errs.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{"error":"account is blocked"}`, errs.ErrForbidden},
		{"server", http.StatusBadGateway, `upstream down`, errs.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := New(server.URL).DeleteProduct(context.Background(), "abc")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestValidationErrorKeepsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"missing or invalid fields: name, image","fields":["name","image"]}`))
	}))
	defer server.Close()

	_, err := New(server.URL).CreateProduct(context.Background(), models.ProductRequest{})

	assert.Equal(t, []string{"name", "image"}, errs.Fields(err))
	assert.EqualError(t, err, "missing or invalid fields: name, image")
}

func TestRequestHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(server.URL).Categories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithTimeoutLeavesCallerClientUntouched(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}

	c := New("", WithHTTPClient(hc), WithTimeout(time.Second))

	assert.Equal(t, time.Minute, hc.Timeout)
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.NotSame(t, hc, c.http)
}
