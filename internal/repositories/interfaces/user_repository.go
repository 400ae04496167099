package interfaces

//go:generate mockgen -source=user_repository.go -destination=../mocks/user_repository_mock.go -package=mocks

import (
	"context"

	"fleetpulse/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByDriverID(ctx context.Context, driverID primitive.ObjectID) (*models.User, error)
	UpdateByDriverID(ctx context.Context, driverID primitive.ObjectID, updates map[string]interface{}) (*models.User, error)
	DeleteByDriverID(ctx context.Context, driverID primitive.ObjectID) error
}
