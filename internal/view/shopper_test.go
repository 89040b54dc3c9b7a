package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/errs"
	"storefront/internal/localstore"
	"storefront/internal/models"
)

func TestCartPersistsAcrossShoppers(t *testing.T) {
	store := localstore.NewMemoryStore()
	pen := models.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 100, DiscountPrice: fp(80)}
	book := models.Product{ID: primitive.NewObjectID(), Name: "Book", Price: 12.5}

	first := NewShopper(store)
	_, err := first.AddToCart(pen, 1)
	require.NoError(t, err)
	_, err = first.AddToCart(book, 2)
	require.NoError(t, err)
	items, err := first.AddToCart(pen, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)

	second := NewShopper(store)
	summary, err := second.CheckoutSummary()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.ItemCount)
	assert.Equal(t, 265.0, summary.Total)
	assert.Equal(t, 80.0, summary.Items[0].Price)
}

func TestRemoveAndClearCart(t *testing.T) {
	s := NewShopper(localstore.NewMemoryStore())
	pen := models.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 1}
	book := models.Product{ID: primitive.NewObjectID(), Name: "Book", Price: 2}
	_, _ = s.AddToCart(pen, 1)
	_, _ = s.AddToCart(book, 1)

	items, err := s.RemoveFromCart(pen.ID.Hex())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Book", items[0].Name)

	require.NoError(t, s.ClearCart())
	items, err = s.Cart()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	s := NewShopper(localstore.NewMemoryStore())

	_, err := s.AddToCart(models.Product{ID: primitive.NewObjectID()}, 0)

	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestToggleFavorite(t *testing.T) {
	s := NewShopper(localstore.NewMemoryStore())

	added, err := s.ToggleFavorite("p1")
	require.NoError(t, err)
	assert.True(t, added)

	fav, err := s.IsFavorite("p1")
	require.NoError(t, err)
	assert.True(t, fav)

	added, err = s.ToggleFavorite("p1")
	require.NoError(t, err)
	assert.False(t, added)

	ids, err := s.Favorites()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestOrderRequestFromCart(t *testing.T) {
	s := NewShopper(localstore.NewMemoryStore())

	_, err := s.OrderRequest("Ada", "ada@example.com")
	assert.ErrorIs(t, err, errs.ErrValidation)

	pen := models.Product{ID: primitive.NewObjectID(), Name: "Pen", Price: 1}
	_, err = s.AddToCart(pen, 3)
	require.NoError(t, err)

	req, err := s.OrderRequest("Ada", "ada@example.com")
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	assert.Equal(t, pen.ID.Hex(), req.Items[0].ProductID)
	assert.Equal(t, 3, req.Items[0].Quantity)
}
