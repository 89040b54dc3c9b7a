package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"storefront/internal/errs"
	"storefront/internal/models"
)

const DefaultBaseURL = "http://localhost:8080/api"

// APIError is a non-2xx response. It unwraps to the errs sentinel matching the status so
// callers can use errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// Client talks to the storefront REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on the client's own copy of its http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts fetches one page of the catalog. Nil bounds and zero values are omitted so
// the server applies its defaults.
func (c *Client) ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	var page models.ProductPage
	if err := c.do(ctx, http.MethodGet, "/products?"+EncodeQuery(q).Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+url.PathEscape(id), update, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/products/"+url.PathEscape(id), nil, nil)
}

// Register creates an account and returns its id.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// EncodeQuery renders a listing query as URL parameters.
func EncodeQuery(q models.ProductQuery) url.Values {
	v := url.Values{}
	setFloat := func(key string, f *float64) {
		if f != nil {
			v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
		}
	}
	setFloat("priceMin", q.PriceMin)
	setFloat("priceMax", q.PriceMax)
	setFloat("ratingMin", q.RatingMin)
	setFloat("discountMin", q.DiscountMin)

	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.InStockOnly {
		v.Set("inStock", "true")
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, payload []byte) error {
	var body struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	_ = json.Unmarshal(payload, &body)

	apiErr := &APIError{StatusCode: status, Message: body.Error, err: errs.FromStatus(status)}
	if status == http.StatusBadRequest {
		apiErr.err = errs.Invalidf(body.Error, body.Fields...)
	}
	return apiErr
}
