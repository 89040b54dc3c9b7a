package models

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortFields are the product fields a listing may be ordered by, keyed by their query name.
var SortFields = map[string]string{
	"price":     "price",
	"rating":    "rating",
	"discount":  "discount",
	"createdAt": "created_at",
	"name":      "name",
}

// ProductQuery carries the filter, sort and pagination options of a catalog listing.
// Nil bounds are not applied.
type ProductQuery struct {
	PriceMin    *float64
	PriceMax    *float64
	RatingMin   *float64
	DiscountMin *float64
	Category    string
	Search      string
	InStockOnly bool
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

// Normalize fills defaults and clamps pagination into range.
func (q *ProductQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		q.Limit = DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = "price"
	}
	if q.SortOrder == "" {
		q.SortOrder = SortAsc
	}
}

// Skip is the number of matching documents before the requested page.
func (q ProductQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// TotalPages is ceil(total/limit); an empty result has zero pages.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
