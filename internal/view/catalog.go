package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"storefront/internal/models"
)

const DefaultTimeout = 10 * time.Second

var (
	// ErrSuperseded is returned by a refresh whose response arrived after a newer one was dispatched.
	ErrSuperseded = errors.New("request superseded by a newer one")
	ErrClosed     = errors.New("catalog closed")
)

// ProductAPI is the part of the storefront API the views drive.
type ProductAPI interface {
	ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error)
	Categories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Filters is the listing state a user controls. Nil bounds are not sent.
type Filters struct {
	Page        int
	Limit       int
	Category    string
	Search      string
	InStockOnly bool
	MinRating   *float64
	PriceMax    *float64
	SortBy      string
	SortOrder   string
}

// Query converts the filters into a listing request.
func (f Filters) Query() models.ProductQuery {
	return models.ProductQuery{
		PriceMax:    f.PriceMax,
		RatingMin:   f.MinRating,
		Category:    f.Category,
		Search:      f.Search,
		InStockOnly: f.InStockOnly,
		SortBy:      f.SortBy,
		SortOrder:   f.SortOrder,
		Page:        f.Page,
		Limit:       f.Limit,
	}
}

type Option func(*Catalog)

func WithTimeout(d time.Duration) Option {
	return func(c *Catalog) { c.timeout = d }
}

func WithFilters(f Filters) Option {
	return func(c *Catalog) { c.filters = f }
}

// Catalog keeps one page of products in sync with its filters. Only the response to the most
// recently dispatched request is ever applied, and filters are committed together with it.
type Catalog struct {
	api     ProductAPI
	timeout time.Duration

	mu sync.Mutex
	// filters describe the displayed page; pending is the latest dispatched state.
	filters    Filters
	pending    Filters
	products   []models.Product
	totalPages int64
	total      int64
	seq        uint64
	cancel     context.CancelFunc
	lastErr    error
	closed     bool
}

func NewCatalog(api ProductAPI, opts ...Option) *Catalog {
	c := &Catalog{
		api:      api,
		timeout:  DefaultTimeout,
		filters:  Filters{Page: models.DefaultPage},
		products: []models.Product{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.pending = c.filters
	return c
}

// Refresh re-fetches the page described by the current filters and replaces the displayed page.
// A request still in flight is cancelled first.
func (c *Catalog) Refresh(ctx context.Context) error {
	return c.dispatch(ctx, nil)
}

// dispatch applies change to a copy of the latest filters and requests that page. The copy
// becomes the displayed state only if its response is applied; a failure restores the
// displayed filters as the base for the next change.
func (c *Catalog) dispatch(ctx context.Context, change func(*Filters) bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	candidate := c.pending
	if change != nil && !change(&candidate) {
		c.mu.Unlock()
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	c.cancel = cancel
	c.pending = candidate
	c.mu.Unlock()

	defer cancel()
	page, err := c.api.ListProducts(reqCtx, candidate.Query())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if seq != c.seq {
		log.Debug().Uint64("seq", seq).Uint64("latest", c.seq).Msg("discarding stale catalog response")
		return ErrSuperseded
	}
	c.cancel = nil

	if err != nil {
		c.lastErr = err
		c.pending = c.filters
		return err
	}

	if page.Page > 0 {
		candidate.Page = page.Page
	}
	c.filters = candidate
	c.pending = candidate
	c.lastErr = nil
	c.products = page.Products
	if c.products == nil {
		c.products = []models.Product{}
	}
	c.totalPages = page.TotalPages
	c.total = page.Total
	return nil
}

// Close aborts any in-flight request; it and later refreshes fail with ErrClosed.
func (c *Catalog) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// update applies fn to the filters, resets to the first page and refreshes.
func (c *Catalog) update(ctx context.Context, fn func(*Filters)) error {
	return c.dispatch(ctx, func(f *Filters) bool {
		fn(f)
		f.Page = models.DefaultPage
		return true
	})
}

// SetCategory selects a category; selecting the active one clears it.
func (c *Catalog) SetCategory(ctx context.Context, category string) error {
	return c.update(ctx, func(f *Filters) {
		if f.Category == category {
			f.Category = ""
		} else {
			f.Category = category
		}
	})
}

func (c *Catalog) SetSearch(ctx context.Context, search string) error {
	return c.update(ctx, func(f *Filters) { f.Search = search })
}

func (c *Catalog) SetInStockOnly(ctx context.Context, inStock bool) error {
	return c.update(ctx, func(f *Filters) { f.InStockOnly = inStock })
}

func (c *Catalog) SetMinRating(ctx context.Context, rating *float64) error {
	return c.update(ctx, func(f *Filters) { f.MinRating = rating })
}

func (c *Catalog) SetPriceMax(ctx context.Context, price *float64) error {
	return c.update(ctx, func(f *Filters) { f.PriceMax = price })
}

func (c *Catalog) SetSort(ctx context.Context, sortBy, sortOrder string) error {
	return c.update(ctx, func(f *Filters) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	})
}

// SetPage moves to page. Pages outside [1, TotalPages] are ignored once the page count is known.
func (c *Catalog) SetPage(ctx context.Context, page int) error {
	return c.dispatch(ctx, func(f *Filters) bool {
		if page < 1 || (c.totalPages > 0 && int64(page) > c.totalPages) || page == f.Page {
			return false
		}
		f.Page = page
		return true
	})
}

func (c *Catalog) NextPage(ctx context.Context) error {
	return c.SetPage(ctx, c.Filters().Page+1)
}

func (c *Catalog) PrevPage(ctx context.Context) error {
	return c.SetPage(ctx, c.Filters().Page-1)
}

// Categories lists the distinct categories for the filter menu.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.api.Categories(ctx)
}

func (c *Catalog) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Products returns a copy of the displayed page.
func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) TotalPages() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *Catalog) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// LastError is the error of the latest applied request, nil after a success.
func (c *Catalog) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Catalog) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}
