package interfaces

//go:generate mockgen -source=car_repository.go -destination=../mocks/car_repository_mock.go -package=mocks

import (
	"context"

	"fleetpulse/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	GetByName(ctx context.Context, name string) (*models.Car, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Car, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ClearDriver unassigns the driver from every car that references it.
	ClearDriver(ctx context.Context, driverID primitive.ObjectID) (int64, error)

	// Listing
	GetView(ctx context.Context, id primitive.ObjectID) (*models.CarView, error)
	List(ctx context.Context, filter *models.CarFilter) ([]*models.CarView, error)
	ListNames(ctx context.Context) ([]*models.NamedItem, error)
}
