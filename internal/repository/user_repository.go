package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/errs"
	"storefront/internal/models"
)

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.ErrConflict
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "UserRepository.Create").Msg("")
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "UserRepository.FindByEmail")
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "UserRepository.FindByID")
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, component string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// FindByRole lists users of a role, newest first
func (r *MongoUserRepository) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UserRepository.FindByRole").Msg("")
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, "UserRepository.Update")
}

// ToggleBlocked flips is_blocked in a single pipeline update
func (r *MongoUserRepository) ToggleBlocked(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "is_blocked", Value: bson.D{{Key: "$not", Value: bson.A{"$is_blocked"}}}}}}},
	}
	return r.findOneAndUpdate(ctx, id, pipeline, "UserRepository.ToggleBlocked")
}

func (r *MongoUserRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update interface{}, component string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var user models.User
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &user, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UserRepository.Delete").Msg("")
		return fmt.Errorf("delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
