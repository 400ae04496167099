package services

//go:generate mockgen -source=car_service.go -destination=mocks/car_service_mock.go -package=mocks

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

type CarService interface {
	Create(ctx context.Context, req *models.CarRequest) (*models.CarView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.CarView, error)
	// Update applies the fields present. An empty driver_id unassigns the
	// driver.
	Update(ctx context.Context, id primitive.ObjectID, req *models.CarRequest) (*models.CarView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter *models.CarFilter) ([]*models.CarView, error)
	ListNames(ctx context.Context) ([]*models.NamedItem, error)
}

type carService struct {
	carRepo    interfaces.CarRepository
	driverRepo interfaces.DriverRepository
	logger     *logger.Logger
}

func NewCarService(carRepo interfaces.CarRepository, driverRepo interfaces.DriverRepository, logger *logger.Logger) CarService {
	return &carService{
		carRepo:    carRepo,
		driverRepo: driverRepo,
		logger:     logger.WithComponent("car_service"),
	}
}

func (s *carService) Create(ctx context.Context, req *models.CarRequest) (*models.CarView, error) {
	if err := validators.ValidateCarCreate(req); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, *req.Name, nil); err != nil {
		return nil, err
	}

	driverID, err := s.resolveDriver(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	car := &models.Car{
		Name:     *req.Name,
		DriverID: driverID,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, writeError(err, msgCarNotFound, "Failed to create car", msgNameExists)
	}

	s.logger.WithContext(ctx).WithCarID(car.ID).Info("Car created")

	return s.Get(ctx, car.ID)
}

func (s *carService) Get(ctx context.Context, id primitive.ObjectID) (*models.CarView, error) {
	view, err := s.carRepo.GetView(ctx, id)
	if err != nil {
		return nil, storeError(err, msgCarNotFound, "Failed to get car")
	}
	return view, nil
}

func (s *carService) Update(ctx context.Context, id primitive.ObjectID, req *models.CarRequest) (*models.CarView, error) {
	if err := validators.ValidateCarUpdate(req); err != nil {
		return nil, err
	}

	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return nil, storeError(err, msgCarNotFound, "Failed to get car")
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		if err := s.ensureNameAvailable(ctx, *req.Name, &id); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
	}
	if req.DriverID != nil {
		driverID, err := s.resolveDriver(ctx, req.DriverID)
		if err != nil {
			return nil, err
		}
		updates["driver_id"] = driverID
	}

	if len(updates) > 0 {
		if _, err := s.carRepo.Update(ctx, id, updates); err != nil {
			return nil, writeError(err, msgCarNotFound, "Failed to update car", msgNameExists)
		}
	}

	return s.Get(ctx, id)
}

func (s *carService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.carRepo.Delete(ctx, id); err != nil {
		return storeError(err, msgCarNotFound, "Failed to delete car")
	}
	s.logger.WithContext(ctx).WithCarID(id).Info("Car deleted")
	return nil
}

func (s *carService) List(ctx context.Context, filter *models.CarFilter) ([]*models.CarView, error) {
	if filter == nil {
		filter = &models.CarFilter{}
	}
	cars, err := s.carRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list cars", err)
	}
	return cars, nil
}

func (s *carService) ListNames(ctx context.Context) ([]*models.NamedItem, error) {
	names, err := s.carRepo.ListNames(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list cars", err)
	}
	return names, nil
}

func (s *carService) ensureNameAvailable(ctx context.Context, name string, self *primitive.ObjectID) error {
	existing, err := s.carRepo.GetByName(ctx, name)
	switch {
	case err == nil:
		if takenBy(existing.ID, self) {
			return utils.NewConflictError(msgNameExists)
		}
		return nil
	case errors.Is(err, interfaces.ErrNotFound):
		return nil
	default:
		return utils.NewInternalError("Failed to check car name", err)
	}
}

// resolveDriver turns the optional driver reference into an id of an
// existing driver. nil or "" yields no driver.
func (s *carService) resolveDriver(ctx context.Context, raw *string) (*primitive.ObjectID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	driverID, err := utils.ParseObjectID(*raw)
	if err != nil {
		return nil, utils.NewValidationError("Invalid driver_id")
	}

	exists, err := s.driverRepo.Exists(ctx, driverID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to check driver", err)
	}
	if !exists {
		return nil, utils.NewNotFoundError(msgDriverNotFound)
	}

	return &driverID, nil
}
