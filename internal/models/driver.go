package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Driver struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName string             `json:"first_name" bson:"first_name"`
	LastName  string             `json:"last_name" bson:"last_name"`
	PhoneNo   string             `json:"phone_no" bson:"phone_no"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

func (d *Driver) Name() string {
	return d.FirstName + " " + d.LastName
}

// DriverRequest is used for both create and partial update. Create-time
// presence checks happen in the validator, not through tags.
type DriverRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,nospace"`
	LastName  *string `json:"last_name" validate:"omitempty,nospace"`
	Username  *string `json:"username" validate:"omitempty,nospace"`
	Password  *string `json:"password" validate:"omitempty,password"`
	PhoneNo   *string `json:"phone_no" validate:"omitempty,phone_no"`
}

type DriverFilter struct {
	ID        *string `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	PhoneNo   *string `json:"phone_no"`
	Username  *string `json:"username"`
}

type DriverView struct {
	ID        primitive.ObjectID `json:"id" bson:"id"`
	Name      string             `json:"name" bson:"name"`
	FirstName string             `json:"first_name" bson:"first_name"`
	LastName  string             `json:"last_name" bson:"last_name"`
	PhoneNo   string             `json:"phone_no" bson:"phone_no"`
	Username  string             `json:"username" bson:"username"`
}

// NamedItem is the compact {id, name} shape used by the /list endpoints.
type NamedItem struct {
	ID   primitive.ObjectID `json:"id" bson:"id"`
	Name string             `json:"name" bson:"name"`
}
