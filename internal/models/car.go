package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Car struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	DriverID  *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

type CarRequest struct {
	Name     *string `json:"name" validate:"omitempty,nospace"`
	DriverID *string `json:"driver_id" validate:"omitempty,object_id"`
}

type CarFilter struct {
	ID         *string `json:"id"`
	Name       *string `json:"name"`
	DriverName *string `json:"driver_name"`
}

type CarView struct {
	ID         primitive.ObjectID  `json:"id" bson:"id"`
	Name       string              `json:"name" bson:"name"`
	DriverID   *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	DriverName string              `json:"driver_name" bson:"driver_name"`
}
