package services

//go:generate mockgen -source=rsu_service.go -destination=mocks/rsu_service_mock.go -package=mocks

import (
	"context"
	"errors"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const msgRSUNotFound = "The RSU not found"

type RSUService interface {
	Create(ctx context.Context, req *models.RSURequest) (*models.RSUView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.RSUView, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.RSURequest) (*models.RSUView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter *models.RSUFilter) ([]*models.RSUView, error)
	ListNames(ctx context.Context) ([]*models.NamedItem, error)
}

type rsuService struct {
	rsuRepo interfaces.RSURepository
	logger  *logger.Logger
}

func NewRSUService(rsuRepo interfaces.RSURepository, logger *logger.Logger) RSUService {
	return &rsuService{
		rsuRepo: rsuRepo,
		logger:  logger.WithComponent("rsu_service"),
	}
}

func (s *rsuService) Create(ctx context.Context, req *models.RSURequest) (*models.RSUView, error) {
	if err := validators.ValidateRSUCreate(req); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, *req.Name, nil); err != nil {
		return nil, err
	}

	rsu := &models.RSU{
		Name:             *req.Name,
		RecommendedSpeed: *req.RecommendedSpeed,
	}
	if err := s.rsuRepo.Create(ctx, rsu); err != nil {
		return nil, writeError(err, msgRSUNotFound, "Failed to create RSU", msgNameExists)
	}

	s.logger.WithContext(ctx).WithField("rsu_id", rsu.ID.Hex()).Info("RSU created")

	return rsuView(rsu), nil
}

func (s *rsuService) Get(ctx context.Context, id primitive.ObjectID) (*models.RSUView, error) {
	view, err := s.rsuRepo.GetView(ctx, id)
	if err != nil {
		return nil, storeError(err, msgRSUNotFound, "Failed to get RSU")
	}
	return view, nil
}

func (s *rsuService) Update(ctx context.Context, id primitive.ObjectID, req *models.RSURequest) (*models.RSUView, error) {
	if err := validators.ValidateRSUUpdate(req); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		if err := s.ensureNameAvailable(ctx, *req.Name, &id); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.RecommendedSpeed != nil {
		updates["recommended_speed"] = *req.RecommendedSpeed
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	rsu, err := s.rsuRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, writeError(err, msgRSUNotFound, "Failed to update RSU", msgNameExists)
	}

	return rsuView(rsu), nil
}

func (s *rsuService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.rsuRepo.Delete(ctx, id); err != nil {
		return storeError(err, msgRSUNotFound, "Failed to delete RSU")
	}
	s.logger.WithContext(ctx).WithField("rsu_id", id.Hex()).Info("RSU deleted")
	return nil
}

func (s *rsuService) List(ctx context.Context, filter *models.RSUFilter) ([]*models.RSUView, error) {
	if filter == nil {
		filter = &models.RSUFilter{}
	}
	rsus, err := s.rsuRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list RSUs", err)
	}
	return rsus, nil
}

func (s *rsuService) ListNames(ctx context.Context) ([]*models.NamedItem, error) {
	names, err := s.rsuRepo.ListNames(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list RSUs", err)
	}
	return names, nil
}

func (s *rsuService) ensureNameAvailable(ctx context.Context, name string, self *primitive.ObjectID) error {
	existing, err := s.rsuRepo.GetByName(ctx, name)
	switch {
	case err == nil:
		if takenBy(existing.ID, self) {
			return utils.NewConflictError(msgNameExists)
		}
		return nil
	case errors.Is(err, interfaces.ErrNotFound):
		return nil
	default:
		return utils.NewInternalError("Failed to check RSU name", err)
	}
}

func rsuView(rsu *models.RSU) *models.RSUView {
	return &models.RSUView{
		ID:               rsu.ID,
		Name:             rsu.Name,
		RecommendedSpeed: rsu.RecommendedSpeed,
	}
}
