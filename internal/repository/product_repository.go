package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"storefront/internal/errs"
	"storefront/internal/models"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	queryTimeout = 10 * time.Second
)

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		collection: collection,
	}
}

// Create inserts a new product
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.Create").Msg("")
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// FindByID loads a product by id
func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var product models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.FindByID").Msg("")
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// FindAll returns one page of matching products together with the total match count
func (r *MongoProductRepository) FindAll(ctx context.Context, query models.ProductQuery) ([]models.Product, int64, error) {
	filter, findOptions, err := BuildProductQuery(query)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// count runs alongside the find
	g, gctx := errgroup.WithContext(ctx)

	var total int64
	g.Go(func() error {
		n, err := r.collection.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		total = n
		return nil
	})

	products := make([]models.Product, 0)
	g.Go(func() error {
		cursor, err := r.collection.Find(gctx, filter, findOptions)
		if err != nil {
			return fmt.Errorf("find products: %w", err)
		}
		defer cursor.Close(gctx)

		if err := cursor.All(gctx, &products); err != nil {
			return fmt.Errorf("decode products: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.FindAll").Msg("")
		return nil, 0, err
	}

	return products, total, nil
}

// Update applies $set/$unset to a product and returns the stored result
func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M, unset []string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	product, err := r.findAndUpdate(ctx, bson.M{"_id": id}, set, unset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.Update").Msg("")
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// UpdateIfUnchanged applies the update only while the stored updated_at still equals
// updatedAt. A product edited in between yields ErrConflict.
func (r *MongoProductRepository) UpdateIfUnchanged(ctx context.Context, id primitive.ObjectID, updatedAt time.Time, set bson.M, unset []string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "updated_at": updatedAt}
	if updatedAt.IsZero() {
		filter["updated_at"] = bson.M{"$exists": false}
	}

	product, err := r.findAndUpdate(ctx, filter, set, unset)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.UpdateIfUnchanged").Msg("")
		return nil, fmt.Errorf("update product: %w", err)
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.UpdateIfUnchanged").Msg("")
		return nil, fmt.Errorf("count product: %w", err)
	}
	if n == 0 {
		return nil, errs.ErrNotFound
	}
	return nil, fmt.Errorf("product %s was modified concurrently: %w", id.Hex(), errs.ErrConflict)
}

func (r *MongoProductRepository) findAndUpdate(ctx context.Context, filter bson.M, set bson.M, unset []string) (*models.Product, error) {
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, field := range unset {
			fields[field] = ""
		}
		update["$unset"] = fields
	}

	var product models.Product
	err := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product permanently
func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.Delete").Msg("")
		return fmt.Errorf("delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Categories lists the distinct product categories in ascending order
func (r *MongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductRepository.Categories").Msg("")
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)

	return categories, nil
}
