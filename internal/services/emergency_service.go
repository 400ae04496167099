package services

//go:generate mockgen -source=emergency_service.go -destination=mocks/emergency_service_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry points an emergency can be created from.
const (
	SourceHTTP  = "http"
	SourceQueue = "queue"
)

const (
	msgCarNotFound       = "The car not found"
	msgEmergencyNotFound = "The emergency not found"
)

// Broadcaster pushes an event to every live subscriber.
type Broadcaster interface {
	Broadcast(event string, payload interface{}) error
}

type EmergencyService interface {
	// Create validates, persists and broadcasts a new emergency. Every entry
	// point goes through here so the stored record and the broadcast payload
	// do not depend on where the request came from.
	Create(ctx context.Context, input models.EmergencyInput, source string) (*models.EmergencyPayload, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.EmergencyInput) (*models.EmergencyPayload, error)
	List(ctx context.Context) ([]*models.EmergencyListItem, error)
}

type emergencyService struct {
	emergencyRepo interfaces.EmergencyRepository
	carRepo       interfaces.CarRepository
	broadcaster   Broadcaster
	location      *time.Location
	logger        *logger.Logger
}

func NewEmergencyService(
	emergencyRepo interfaces.EmergencyRepository,
	carRepo interfaces.CarRepository,
	broadcaster Broadcaster,
	location *time.Location,
	logger *logger.Logger,
) EmergencyService {
	if location == nil {
		location = time.UTC
	}
	return &emergencyService{
		emergencyRepo: emergencyRepo,
		carRepo:       carRepo,
		broadcaster:   broadcaster,
		location:      location,
		logger:        logger.WithComponent("emergency_service"),
	}
}

func (s *emergencyService) Create(ctx context.Context, input models.EmergencyInput, source string) (*models.EmergencyPayload, error) {
	carID, err := validators.ValidateEmergencyCarID(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCarExists(ctx, carID); err != nil {
		return nil, err
	}

	draft, err := validators.ValidateEmergencyCreate(input)
	if err != nil {
		return nil, err
	}

	emergency := &models.Emergency{
		CarID:     draft.CarID,
		Status:    draft.Status,
		Latitude:  draft.Latitude,
		Longitude: draft.Longitude,
	}
	if err := s.emergencyRepo.Create(ctx, emergency); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithCarID(draft.CarID).Error("Failed to create emergency")
		return nil, utils.NewInternalError("Failed to create emergency", err)
	}

	payload := emergency.Payload()
	s.broadcast(ctx, payload)

	s.logger.WithContext(ctx).LogEmergencyEvent(emergency.ID, "created", source, map[string]interface{}{
		"car_id": emergency.CarID.Hex(),
		"status": emergency.Status,
	})

	return &payload, nil
}

func (s *emergencyService) Update(ctx context.Context, id primitive.ObjectID, input models.EmergencyInput) (*models.EmergencyPayload, error) {
	carID, err := validators.ValidateEmergencyPatchCarID(input)
	if err != nil {
		return nil, err
	}
	if carID != nil {
		if err := s.ensureCarExists(ctx, *carID); err != nil {
			return nil, err
		}
	}

	patch, err := validators.ValidateEmergencyUpdate(input)
	if err != nil {
		return nil, err
	}

	var emergency *models.Emergency
	if patch.IsEmpty() {
		emergency, err = s.emergencyRepo.GetByID(ctx, id)
	} else {
		emergency, err = s.emergencyRepo.Update(ctx, id, patchUpdates(&patch))
	}
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewNotFoundError(msgEmergencyNotFound)
		}
		s.logger.WithContext(ctx).WithError(err).WithEmergencyID(id).Error("Failed to update emergency")
		return nil, utils.NewInternalError("Failed to update emergency", err)
	}

	payload := emergency.Payload()
	s.broadcast(ctx, payload)

	s.logger.WithContext(ctx).LogEmergencyEvent(emergency.ID, "updated", SourceHTTP, map[string]interface{}{
		"status": emergency.Status,
	})

	return &payload, nil
}

func (s *emergencyService) List(ctx context.Context) ([]*models.EmergencyListItem, error) {
	items, err := s.emergencyRepo.ListEnriched(ctx)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list emergencies")
		return nil, utils.NewInternalError("Failed to list emergencies", err)
	}

	for _, item := range items {
		item.Time = utils.FormatClock(item.CreatedAt, s.location)
	}

	return items, nil
}

func (s *emergencyService) ensureCarExists(ctx context.Context, carID primitive.ObjectID) error {
	exists, err := s.carRepo.Exists(ctx, carID)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).WithCarID(carID).Error("Failed to check car")
		return utils.NewInternalError("Failed to check car", err)
	}
	if !exists {
		return utils.NewNotFoundError(msgCarNotFound)
	}
	return nil
}

// broadcast runs after the write has been committed. A failure here does not
// undo the write.
func (s *emergencyService) broadcast(ctx context.Context, payload models.EmergencyPayload) {
	if s.broadcaster == nil {
		return
	}
	if err := s.broadcaster.Broadcast(models.EmergencyEvent, payload); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithEmergencyID(payload.ID).Warn("Failed to broadcast emergency")
	}
}

func patchUpdates(patch *models.EmergencyPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if patch.CarID != nil {
		updates["car_id"] = *patch.CarID
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Latitude != nil {
		updates["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil {
		updates["longitude"] = *patch.Longitude
	}
	return updates
}
