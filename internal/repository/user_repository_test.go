package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront/internal/errs"
	"storefront/internal/models"
)

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create with a taken email conflicts", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: storefront.users index: email_1",
		}))

		err := repo.Create(context.Background(), &models.User{Email: "ada@example.com", Role: models.RoleCustomer})
		assert.ErrorIs(mt, err, errs.ErrConflict)
	})

	mt.Run("create stamps id and creation time", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user := &models.User{Email: "ada@example.com", Role: models.RoleCustomer}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.False(mt, user.ID.IsZero())
		assert.False(mt, user.CreatedAt.IsZero())
	})

	mt.Run("find by email without a match is not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, errs.ErrNotFound)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "nobody@example.com", cmd.Lookup("filter", "email").StringValue())
	})

	mt.Run("toggle blocked sends a pipeline update", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "ada@example.com"},
			{Key: "is_blocked", Value: true},
		}}))

		user, err := repo.ToggleBlocked(context.Background(), id)
		require.NoError(mt, err)
		assert.True(mt, user.IsBlocked)

		update := mt.GetStartedEvent().Command.Lookup("update")
		stages, ok := update.ArrayOK()
		require.True(mt, ok, "update should be a pipeline, got %s", update.Type)

		values, err := stages.Values()
		require.NoError(mt, err)
		require.Len(mt, values, 1)
		_, err = values[0].Document().LookupErr("$set", "is_blocked", "$not")
		assert.NoError(mt, err)
	})

	mt.Run("toggle blocked of a missing user is not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.ToggleBlocked(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("delete of a missing user is not found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})
}
