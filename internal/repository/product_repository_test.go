package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront/internal/errs"
	"storefront/internal/models"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func productDoc(id primitive.ObjectID, name string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "price", Value: 100.0},
		{Key: "discount", Value: 20},
		{Key: "category", Value: "stationery"},
		{Key: "stock", Value: true},
		{Key: "count", Value: int64(5)},
	}
}

func TestMongoProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create stamps id and timestamps", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		product := &models.Product{Name: "Pen", Price: 100}
		require.NoError(mt, repo.Create(context.Background(), product))

		assert.False(mt, product.ID.IsZero())
		assert.False(mt, product.CreatedAt.IsZero())
		assert.Equal(mt, product.CreatedAt, product.UpdatedAt)
	})

	mt.Run("find by id decodes the document", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, productDoc(id, "Pen")))

		product, err := repo.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, product.ID)
		assert.Equal(mt, "Pen", product.Name)
		assert.Equal(mt, int64(5), product.Count)
	})

	mt.Run("find by id without a match is not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("update sends set and unset with a fresh updated_at", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, "Quill")}))

		product, err := repo.Update(context.Background(), id, bson.M{"name": "Quill"}, []string{"discount_price"})
		require.NoError(mt, err)
		assert.Equal(mt, "Quill", product.Name)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, id, cmd.Lookup("query", "_id").ObjectID())
		assert.Equal(mt, "Quill", cmd.Lookup("update", "$set", "name").StringValue())
		assert.False(mt, cmd.Lookup("update", "$set", "updated_at").Time().IsZero())

		_, err = cmd.LookupErr("update", "$unset", "discount_price")
		assert.NoError(mt, err)
	})

	mt.Run("update without unset fields omits $unset", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, "Pen")}))

		_, err := repo.Update(context.Background(), id, nil, nil)
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		_, err = cmd.LookupErr("update", "$unset")
		assert.Error(mt, err)
		_, err = cmd.LookupErr("update", "$set", "updated_at")
		assert.NoError(mt, err)
	})

	mt.Run("update of a missing product is not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Update(context.Background(), primitive.NewObjectID(), bson.M{"name": "Quill"}, nil)
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("guarded update filters on the updated_at that was read", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		id := primitive.NewObjectID()
		readAt := time.Date(2026, 4, 10, 8, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, "Pen")}))

		_, err := repo.UpdateIfUnchanged(context.Background(), id, readAt, bson.M{"price": 120.0}, nil)
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, id, cmd.Lookup("query", "_id").ObjectID())
		assert.True(mt, readAt.Equal(cmd.Lookup("query", "updated_at").Time()))
	})

	mt.Run("guarded update without a stored timestamp requires it absent", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: productDoc(id, "Pen")}))

		_, err := repo.UpdateIfUnchanged(context.Background(), id, time.Time{}, bson.M{"price": 120.0}, nil)
		require.NoError(mt, err)

		cmd := mt.GetStartedEvent().Command
		assert.False(mt, cmd.Lookup("query", "updated_at", "$exists").Boolean())
	})

	mt.Run("guarded update after a concurrent edit conflicts", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}),
		)

		_, err := repo.UpdateIfUnchanged(context.Background(), primitive.NewObjectID(), time.Now().UTC(), bson.M{"count": int64(1)}, nil)
		assert.ErrorIs(mt, err, errs.ErrConflict)
	})

	mt.Run("guarded update of a missing product is not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch),
		)

		_, err := repo.UpdateIfUnchanged(context.Background(), primitive.NewObjectID(), time.Now().UTC(), bson.M{"count": int64(1)}, nil)
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("delete of a missing product is not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})

	mt.Run("delete of an existing product succeeds", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, repo.Delete(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("categories drop blanks and non strings then sort", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "values", Value: bson.A{"toys", "", int32(7), "books", nil, "garden"}},
		))

		categories, err := repo.Categories(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"books", "garden", "toys"}, categories)

		assert.Equal(mt, "category", mt.GetStartedEvent().Command.Lookup("key").StringValue())
	})

	mt.Run("categories of an empty catalog is an empty list", func(mt *mtest.T) {
		repo := NewProductRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{}}))

		categories, err := repo.Categories(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, categories)
		assert.Empty(mt, categories)
	})
}
