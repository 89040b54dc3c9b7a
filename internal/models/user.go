package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User is a storefront account. Password holds the bcrypt hash and is never serialised.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName string             `json:"firstName" bson:"first_name"`
	LastName  string             `json:"lastName" bson:"last_name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role"`
	IsBlocked bool               `json:"isBlocked" bson:"is_blocked"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// FullName joins the name fields.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      Role   `json:"role" binding:"omitempty,oneof=admin customer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
}

// CustomerUpdate holds the editable profile fields of a customer.
type CustomerUpdate struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty"`
}
