package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/errs"
	"storefront/internal/models"
)

// BuildProductQuery translates a listing request into a MongoDB filter and find options.
// The query is expected to be normalized. Bounds apply independently and are ANDed.
func BuildProductQuery(q models.ProductQuery) (bson.M, *options.FindOptions, error) {
	sortField, ok := models.SortFields[q.SortBy]
	if !ok {
		return nil, nil, errs.Invalidf("sortBy must be one of price, rating, discount, createdAt, name", "sortBy")
	}

	var direction int
	switch q.SortOrder {
	case models.SortAsc:
		direction = 1
	case models.SortDesc:
		direction = -1
	default:
		return nil, nil, errs.Invalidf("sortOrder must be asc or desc", "sortOrder")
	}

	filter := bson.M{}

	price := bson.M{}
	if q.PriceMin != nil {
		price["$gte"] = *q.PriceMin
	}
	if q.PriceMax != nil {
		price["$lte"] = *q.PriceMax
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if q.RatingMin != nil {
		filter["rating"] = bson.M{"$gte": *q.RatingMin}
	}
	if q.DiscountMin != nil {
		filter["discount"] = bson.M{"$gte": *q.DiscountMin}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Search), "$options": "i"}
	}
	if q.InStockOnly {
		filter["stock"] = true
	}

	// _id breaks ties so equal sort keys page deterministically
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: direction}, {Key: "_id", Value: 1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	return filter, opts, nil
}
