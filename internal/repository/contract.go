package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks storefront/internal/repository ProductRepository,UserRepository,OrderRepository

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context, query models.ProductQuery) ([]models.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M, unset []string) (*models.Product, error)
	UpdateIfUnchanged(ctx context.Context, id primitive.ObjectID, updatedAt time.Time, set bson.M, unset []string) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Categories(ctx context.Context) ([]string, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	ToggleBlocked(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var (
	_ ProductRepository = (*MongoProductRepository)(nil)
	_ UserRepository    = (*MongoUserRepository)(nil)
	_ OrderRepository   = (*MongoOrderRepository)(nil)
)
