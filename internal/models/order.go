package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// OrderItem is a snapshot of a product taken when the order was placed.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"product_id"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerName  string             `json:"customerName" bson:"customer_name"`
	CustomerEmail string             `json:"customerEmail" bson:"customer_email"`
	Items         []OrderItem        `json:"items" bson:"items"`
	TotalAmount   float64            `json:"totalAmount" bson:"total_amount"`
	Status        OrderStatus        `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
}

// OrderTotal sums price*quantity over items, rounded to cents.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type OrderRequest struct {
	CustomerName  string             `json:"customerName" binding:"required"`
	CustomerEmail string             `json:"customerEmail" binding:"required,email"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=Pending Shipped Delivered"`
}

// OrderFilter narrows an order listing; empty fields are not applied.
type OrderFilter struct {
	Status   OrderStatus
	Customer string
}
