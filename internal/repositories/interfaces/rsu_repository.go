package interfaces

//go:generate mockgen -source=rsu_repository.go -destination=../mocks/rsu_repository_mock.go -package=mocks

import (
	"context"

	"fleetpulse/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RSURepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, rsu *models.RSU) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RSU, error)
	GetByName(ctx context.Context, name string) (*models.RSU, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.RSU, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing
	GetView(ctx context.Context, id primitive.ObjectID) (*models.RSUView, error)
	List(ctx context.Context, filter *models.RSUFilter) ([]*models.RSUView, error)
	ListNames(ctx context.Context) ([]*models.NamedItem, error)
}
