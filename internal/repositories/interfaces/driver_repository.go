package interfaces

//go:generate mockgen -source=driver_repository.go -destination=../mocks/driver_repository_mock.go -package=mocks

import (
	"context"

	"fleetpulse/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	GetByName(ctx context.Context, firstName, lastName string) (*models.Driver, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Driver, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing, joined with the driver's user for the username
	GetView(ctx context.Context, id primitive.ObjectID) (*models.DriverView, error)
	List(ctx context.Context, filter *models.DriverFilter) ([]*models.DriverView, error)
	ListNames(ctx context.Context) ([]*models.NamedItem, error)
}
