package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"storefront/internal/errs"
	"storefront/internal/models"
	"storefront/internal/repository/mocks"
)

func TestOrderServicePlaceSnapshotsProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductRepository(ctrl)
	svc := NewOrderService(orders, products)

	pen := &models.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 100, DiscountPrice: fp(80)}
	pad := &models.Product{ID: primitive.NewObjectID(), Name: "Pad", Price: 12.5}

	products.EXPECT().FindByID(gomock.Any(), pen.ID).Return(pen, nil)
	products.EXPECT().FindByID(gomock.Any(), pad.ID).Return(pad, nil)
	orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o *models.Order) error {
		o.ID = primitive.NewObjectID()
		return nil
	})

	order, err := svc.Place(context.Background(), models.OrderRequest{
		CustomerName:  "Grace",
		CustomerEmail: "Grace@Example.com",
		Items: []models.OrderItemRequest{
			{ProductID: pen.ID.Hex(), Quantity: 2},
			{ProductID: pad.ID.Hex(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "grace@example.com", order.CustomerEmail)
	assert.Equal(t, 172.5, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 80.0, order.Items[0].Price)

	// later edits to the product do not reach the order
	pen.Price = 500
	pen.Name = "Gold pen"
	assert.Equal(t, "Pen", order.Items[0].Name)
	assert.Equal(t, 172.5, order.TotalAmount)
}

func TestOrderServicePlaceValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewOrderService(mocks.NewMockOrderRepository(ctrl), mocks.NewMockProductRepository(ctrl))

	_, err := svc.Place(context.Background(), models.OrderRequest{})
	assert.Equal(t, []string{"customerName", "customerEmail", "items"}, errs.Fields(err))

	_, err = svc.Place(context.Background(), models.OrderRequest{
		CustomerName:  "Grace",
		CustomerEmail: "grace@example.com",
		Items:         []models.OrderItemRequest{{ProductID: "nope", Quantity: 1}},
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Place(context.Background(), models.OrderRequest{
		CustomerName:  "Grace",
		CustomerEmail: "grace@example.com",
		Items:         []models.OrderItemRequest{{ProductID: primitive.NewObjectID().Hex(), Quantity: 0}},
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestOrderServicePlaceUnknownProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mocks.NewMockProductRepository(ctrl)
	svc := NewOrderService(mocks.NewMockOrderRepository(ctrl), products)

	id := primitive.NewObjectID()
	products.EXPECT().FindByID(gomock.Any(), id).Return(nil, errs.ErrNotFound)

	_, err := svc.Place(context.Background(), models.OrderRequest{
		CustomerName:  "Grace",
		CustomerEmail: "grace@example.com",
		Items:         []models.OrderItemRequest{{ProductID: id.Hex(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestOrderServiceStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	svc := NewOrderService(orders, mocks.NewMockProductRepository(ctrl))

	id := primitive.NewObjectID()
	orders.EXPECT().UpdateStatus(gomock.Any(), id, models.OrderShipped).Return(&models.Order{ID: id, Status: models.OrderShipped}, nil)

	order, err := svc.UpdateStatus(context.Background(), id, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, order.Status)

	_, err = svc.UpdateStatus(context.Background(), id, "Lost")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.List(context.Background(), models.OrderFilter{Status: "Lost"})
	assert.ErrorIs(t, err, errs.ErrValidation)
}
