package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/errs"
	"storefront/internal/models"
)

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(collection *mongo.Collection) *MongoOrderRepository {
	return &MongoOrderRepository{collection: collection}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderRepository.Create").Msg("")
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// OrderFilterDoc builds the listing filter for orders.
func OrderFilterDoc(filter models.OrderFilter) bson.M {
	doc := bson.M{}
	if filter.Status != "" {
		doc["status"] = filter.Status
	}
	if filter.Customer != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Customer), "$options": "i"}
		doc["$or"] = bson.A{
			bson.M{"customer_name": pattern},
			bson.M{"customer_email": pattern},
		}
	}
	return doc
}

// FindAll lists orders, newest first
func (r *MongoOrderRepository) FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, OrderFilterDoc(filter), opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderRepository.FindAll").Msg("")
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var order models.Order
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderRepository.UpdateStatus").Msg("")
		return nil, fmt.Errorf("update order: %w", err)
	}
	return &order, nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "OrderRepository.Delete").Msg("")
		return fmt.Errorf("delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
