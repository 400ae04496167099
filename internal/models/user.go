package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleDriver UserRole = "driver"
)

type User struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Username  string              `json:"username" bson:"username"`
	Password  string              `json:"-" bson:"password"`
	Role      UserRole            `json:"role" bson:"role"`
	DriverID  *primitive.ObjectID `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        UserRole  `json:"role"`
}
