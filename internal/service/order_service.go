package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/errs"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository) OrderService {
	return &orderService{orders: orders, products: products}
}

// Place snapshots the name and effective price of every ordered product. Later product
// edits do not change an existing order. Stock is not reserved.
func (s *orderService) Place(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	var missing []string
	if strings.TrimSpace(req.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		missing = append(missing, "customerEmail")
	}
	if len(req.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return nil, errs.Invalid(missing...)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, errs.Invalidf(fmt.Sprintf("items[%d].quantity must be at least 1", i), "items")
		}
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errs.Invalidf(fmt.Sprintf("items[%d].productId is not a valid id", i), "items")
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  item.Quantity,
		})
	}

	order := &models.Order{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: normalizeEmail(req.CustomerEmail),
		Items:         items,
		TotalAmount:   models.OrderTotal(items),
		Status:        models.OrderPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("order_id", order.ID.Hex()).Float64("total", order.TotalAmount).Msg("order placed")
	return order, nil
}

func (s *orderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, errs.Invalidf("status must be one of Pending, Shipped, Delivered", "status")
	}
	return s.orders.FindAll(ctx, filter)
}

func (s *orderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, errs.Invalidf("status must be one of Pending, Shipped, Delivered", "status")
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *orderService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.orders.Delete(ctx, id)
}
