package view

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// Draft is the product form of the admin grid.
type Draft struct {
	Name          string
	Description   string
	Price         float64
	DiscountPrice *float64
	Image         string
	Rating        float64
	Category      string
	Count         int64
}

func (d Draft) Request() models.ProductRequest {
	return models.ProductRequest{
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		DiscountPrice: d.DiscountPrice,
		Image:         d.Image,
		Rating:        d.Rating,
		Category:      d.Category,
		Count:         d.Count,
	}
}

// Update sends every form field. A cleared discount price is sent as 0, which removes it.
func (d Draft) Update() models.ProductUpdate {
	discountPrice := 0.0
	if d.DiscountPrice != nil {
		discountPrice = *d.DiscountPrice
	}
	return models.ProductUpdate{
		Name:          &d.Name,
		Description:   &d.Description,
		Price:         &d.Price,
		DiscountPrice: &discountPrice,
		Image:         &d.Image,
		Rating:        &d.Rating,
		Category:      &d.Category,
		Count:         &d.Count,
	}
}

// AdminCatalog is the management grid: the catalog listing plus a create/edit form.
// Every successful mutation is followed by a re-fetch of the current page.
type AdminCatalog struct {
	*Catalog
	draft     Draft
	editingID string
}

func NewAdminCatalog(api ProductAPI, opts ...Option) *AdminCatalog {
	return &AdminCatalog{Catalog: NewCatalog(api, opts...)}
}

func (a *AdminCatalog) Draft() Draft {
	return a.draft
}

func (a *AdminCatalog) SetDraft(d Draft) {
	a.draft = d
}

// Editing returns the id of the product loaded into the form, empty when creating.
func (a *AdminCatalog) Editing() string {
	return a.editingID
}

// Edit loads an existing product into the form.
func (a *AdminCatalog) Edit(p models.Product) {
	a.editingID = p.ID.Hex()
	a.draft = Draft{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Image:         p.Image,
		Rating:        p.Rating,
		Category:      p.Category,
		Count:         p.Count,
	}
}

// Reset clears the form back to create mode.
func (a *AdminCatalog) Reset() {
	a.draft = Draft{}
	a.editingID = ""
}

// Submit creates or updates the product in the form. Required fields are checked before any
// request is sent; on failure the form keeps its contents.
func (a *AdminCatalog) Submit(ctx context.Context) (*models.Product, error) {
	if err := a.draft.Request().Validate(); err != nil {
		a.setError(err)
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		product *models.Product
		err     error
	)
	if a.editingID == "" {
		product, err = a.api.CreateProduct(reqCtx, a.draft.Request())
	} else {
		product, err = a.api.UpdateProduct(reqCtx, a.editingID, a.draft.Update())
	}
	if err != nil {
		a.setError(err)
		return nil, err
	}

	a.Reset()
	return product, a.refetch(ctx)
}

// Delete removes a product and re-fetches the page.
func (a *AdminCatalog) Delete(ctx context.Context, id string) error {
	reqCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.api.DeleteProduct(reqCtx, id); err != nil {
		a.setError(err)
		return err
	}
	if a.editingID == id {
		a.Reset()
	}
	return a.refetch(ctx)
}

func (a *AdminCatalog) refetch(ctx context.Context) error {
	if err := a.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		return err
	}
	return nil
}
