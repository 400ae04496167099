package interfaces

//go:generate mockgen -source=emergency_repository.go -destination=../mocks/emergency_repository_mock.go -package=mocks

import (
	"context"

	"fleetpulse/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmergencyRepository interface {
	// Create assigns the id and timestamps before inserting.
	Create(ctx context.Context, emergency *models.Emergency) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Emergency, error)
	// Update applies $set and returns the post-update document.
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Emergency, error)

	// ListEnriched joins cars and drivers. Emergencies whose car no longer
	// exists are left out.
	ListEnriched(ctx context.Context) ([]*models.EmergencyListItem, error)
}
