package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

type ProductService interface {
	Create(ctx context.Context, req models.ProductRequest) (*models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, query models.ProductQuery) (*models.ProductPage, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Categories(ctx context.Context) ([]string, error)
}

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ListCustomers(ctx context.Context) ([]models.User, error)
	GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateCustomer(ctx context.Context, id primitive.ObjectID, update models.CustomerUpdate) (*models.User, error)
	DeleteCustomer(ctx context.Context, id primitive.ObjectID) error
	ToggleBlocked(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type OrderService interface {
	Place(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
