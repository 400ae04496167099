package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RSU struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	RecommendedSpeed string             `json:"recommended_speed" bson:"recommended_speed"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

type RSURequest struct {
	Name             *string `json:"name" validate:"omitempty,nospace"`
	RecommendedSpeed *string `json:"recommended_speed" validate:"omitempty,numeric_string"`
}

type RSUFilter struct {
	ID               *string `json:"id"`
	Name             *string `json:"name"`
	RecommendedSpeed *string `json:"recommended_speed"`
}

type RSUView struct {
	ID               primitive.ObjectID `json:"id" bson:"id"`
	Name             string             `json:"name" bson:"name"`
	RecommendedSpeed string             `json:"recommended_speed" bson:"recommended_speed"`
}
