package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Discount and Stock are derived and never taken from clients.
type Product struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description" bson:"description"`
	Price         float64            `json:"price" bson:"price"`
	DiscountPrice *float64           `json:"discountPrice,omitempty" bson:"discount_price,omitempty"`
	Discount      int                `json:"discount" bson:"discount"`
	Image         string             `json:"image" bson:"image"`
	Rating        float64            `json:"rating" bson:"rating"`
	Category      string             `json:"category" bson:"category"`
	Stock         bool               `json:"stock" bson:"stock"`
	Count         int64              `json:"count" bson:"count"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// EffectivePrice is what a customer pays: the discount price when it actually discounts.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

// ApplyDerived recomputes discount and stock from price, discountPrice and count.
func (p *Product) ApplyDerived() {
	p.DiscountPrice = NormalizeDiscountPrice(p.DiscountPrice)
	p.Discount = ComputeDiscount(p.Price, p.DiscountPrice)
	p.Stock = InStock(p.Count)
}

// ProductRequest is the body accepted when creating a product.
type ProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *float64 `json:"discountPrice"`
	Image         string   `json:"image" binding:"required"`
	Rating        float64  `json:"rating" binding:"gte=0,lte=5"`
	Category      string   `json:"category" binding:"required"`
	Count         int64    `json:"count" binding:"gte=0"`
}

// ToProduct builds the stored representation with derived fields applied.
func (r ProductRequest) ToProduct() Product {
	p := Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		DiscountPrice: r.DiscountPrice,
		Image:         r.Image,
		Rating:        r.Rating,
		Category:      r.Category,
		Count:         r.Count,
	}
	p.ApplyDerived()
	return p
}

// ProductUpdate holds the updatable fields of a product; nil means unchanged.
type ProductUpdate struct {
	Name          *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Image         *string  `json:"image,omitempty" binding:"omitempty,min=1"`
	Rating        *float64 `json:"rating,omitempty" binding:"omitempty,gte=0,lte=5"`
	Category      *string  `json:"category,omitempty" binding:"omitempty,min=1"`
	Count         *int64   `json:"count,omitempty" binding:"omitempty,gte=0"`
}

// Empty reports whether the update carries no field at all.
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.DiscountPrice == nil &&
		u.Image == nil && u.Rating == nil && u.Category == nil && u.Count == nil
}

// TouchesDerived reports whether discount and stock must be recomputed.
func (u ProductUpdate) TouchesDerived() bool {
	return u.Price != nil || u.DiscountPrice != nil || u.Count != nil
}

// Apply merges the update into p and recomputes the derived fields when needed.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.DiscountPrice != nil {
		p.DiscountPrice = u.DiscountPrice
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Count != nil {
		p.Count = *u.Count
	}
	if u.TouchesDerived() {
		p.ApplyDerived()
	}
}

// ProductPage is one page of a catalog listing.
type ProductPage struct {
	Products   []Product `json:"products"`
	TotalPages int64     `json:"totalPages"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
}
