package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// Create validates the request and stores the product with its derived fields.
func (s *productService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := req.ToProduct()
	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("product_id", product.ID.Hex()).Int("discount", product.Discount).Msg("product created")
	return &product, nil
}

func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of the catalog; the product slice is never nil.
func (s *productService) List(ctx context.Context, query models.ProductQuery) (*models.ProductPage, error) {
	query.Normalize()

	products, total, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}

	return &models.ProductPage{
		Products:   products,
		TotalPages: models.TotalPages(total, query.Limit),
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil
}

// Update replaces the supplied fields. Whenever price, discountPrice or count is part of
// the update, discount and stock are recomputed from the merged document, and the write
// fails with errs.ErrConflict if the product changed after it was read.
func (s *productService) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (*models.Product, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	set := bson.M{}
	var unset []string

	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	if !update.TouchesDerived() {
		return s.repo.Update(ctx, id, set, unset)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	readAt := current.UpdatedAt
	update.Apply(current)

	set["price"] = current.Price
	set["count"] = current.Count
	set["discount"] = current.Discount
	set["stock"] = current.Stock
	if current.DiscountPrice != nil {
		set["discount_price"] = *current.DiscountPrice
	} else {
		unset = append(unset, "discount_price")
	}

	// derived fields were computed from the copy read above
	return s.repo.UpdateIfUnchanged(ctx, id, readAt, set, unset)
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("product_id", id.Hex()).Msg("product deleted")
	return nil
}

func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
