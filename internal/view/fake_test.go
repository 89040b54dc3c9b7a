package view

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

type fakeAPI struct {
	mu      sync.Mutex
	queries []models.ProductQuery
	created []models.ProductRequest
	updated map[string]models.ProductUpdate
	deleted []string

	list      func(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error)
	mutateErr error
}

func newFakeAPI(pages ...models.ProductPage) *fakeAPI {
	f := &fakeAPI{updated: map[string]models.ProductUpdate{}}
	f.list = func(_ context.Context, q models.ProductQuery) (*models.ProductPage, error) {
		if len(pages) == 0 {
			return &models.ProductPage{Products: []models.Product{}, Page: q.Page}, nil
		}
		p := pages[0]
		if len(pages) > 1 {
			pages = pages[1:]
		}
		return &p, nil
	}
	return f
}

func (f *fakeAPI) ListProducts(ctx context.Context, q models.ProductQuery) (*models.ProductPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	list := f.list
	f.mu.Unlock()
	return list(ctx, q)
}

func (f *fakeAPI) Categories(context.Context) ([]string, error) {
	return []string{"books", "stationery"}, nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, req models.ProductRequest) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.created = append(f.created, req)
	p := req.ToProduct()
	p.ID = primitive.NewObjectID()
	return &p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, update models.ProductUpdate) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	f.updated[id] = update
	return &models.Product{}, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) Queries() []models.ProductQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProductQuery(nil), f.queries...)
}

func (f *fakeAPI) lastQuery() models.ProductQuery {
	q := f.Queries()
	return q[len(q)-1]
}
