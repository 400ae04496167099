package services

//go:generate mockgen -source=driver_service.go -destination=mocks/driver_service_mock.go -package=mocks

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

const (
	msgDriverNotFound = "The driver not found"
	msgUsernameExists = "Username already exists"
)

type DriverService interface {
	// Create stores the driver and the login user that belongs to it.
	Create(ctx context.Context, req *models.DriverRequest) (*models.DriverView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.DriverView, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.DriverRequest) (*models.DriverView, error)
	// Delete removes the driver and its user and unassigns it from every car.
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter *models.DriverFilter) ([]*models.DriverView, error)
	ListNames(ctx context.Context) ([]*models.NamedItem, error)
}

type driverService struct {
	driverRepo interfaces.DriverRepository
	userRepo   interfaces.UserRepository
	carRepo    interfaces.CarRepository
	logger     *logger.Logger
}

func NewDriverService(
	driverRepo interfaces.DriverRepository,
	userRepo interfaces.UserRepository,
	carRepo interfaces.CarRepository,
	logger *logger.Logger,
) DriverService {
	return &driverService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
		carRepo:    carRepo,
		logger:     logger.WithComponent("driver_service"),
	}
}

func (s *driverService) Create(ctx context.Context, req *models.DriverRequest) (*models.DriverView, error) {
	if err := validators.ValidateDriverCreate(req); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, *req.FirstName, *req.LastName, nil); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameAvailable(ctx, *req.Username, nil); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(*req.Password)
	if err != nil {
		return nil, err
	}

	driver := &models.Driver{
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		PhoneNo:   *req.PhoneNo,
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, writeError(err, msgDriverNotFound, "Failed to create driver", msgNameExists)
	}

	user := &models.User{
		Username: *req.Username,
		Password: hashed,
		Role:     models.UserRoleDriver,
		DriverID: &driver.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Roll back the driver so no driver is left without a login.
		if delErr := s.driverRepo.Delete(ctx, driver.ID); delErr != nil {
			s.logger.WithContext(ctx).WithError(delErr).WithField("driver_id", driver.ID.Hex()).Error("Failed to roll back driver")
		}
		return nil, writeError(err, msgDriverNotFound, "Failed to create user", msgUsernameExists)
	}

	s.logger.WithContext(ctx).WithField("driver_id", driver.ID.Hex()).Info("Driver created")

	return driverView(driver, user.Username), nil
}

func (s *driverService) Get(ctx context.Context, id primitive.ObjectID) (*models.DriverView, error) {
	view, err := s.driverRepo.GetView(ctx, id)
	if err != nil {
		return nil, storeError(err, msgDriverNotFound, "Failed to get driver")
	}
	return view, nil
}

func (s *driverService) Update(ctx context.Context, id primitive.ObjectID, req *models.DriverRequest) (*models.DriverView, error) {
	if err := validators.ValidateDriverUpdate(req); err != nil {
		return nil, err
	}

	current, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgDriverNotFound, "Failed to get driver")
	}

	driverUpdates := make(map[string]interface{})
	firstName, lastName := current.FirstName, current.LastName
	if req.FirstName != nil {
		firstName = *req.FirstName
		driverUpdates["first_name"] = firstName
	}
	if req.LastName != nil {
		lastName = *req.LastName
		driverUpdates["last_name"] = lastName
	}
	if req.PhoneNo != nil {
		driverUpdates["phone_no"] = *req.PhoneNo
	}

	if req.FirstName != nil || req.LastName != nil {
		if err := s.ensureNameAvailable(ctx, firstName, lastName, &id); err != nil {
			return nil, err
		}
	}

	userUpdates := make(map[string]interface{})
	if req.Username != nil {
		if err := s.ensureUsernameAvailable(ctx, *req.Username, &id); err != nil {
			return nil, err
		}
		userUpdates["username"] = *req.Username
	}
	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		userUpdates["password"] = hashed
	}

	driver := current
	if len(driverUpdates) > 0 {
		driver, err = s.driverRepo.Update(ctx, id, driverUpdates)
		if err != nil {
			return nil, writeError(err, msgDriverNotFound, "Failed to update driver", msgNameExists)
		}
	}

	var user *models.User
	if len(userUpdates) > 0 {
		user, err = s.userRepo.UpdateByDriverID(ctx, id, userUpdates)
		if err != nil {
			return nil, writeError(err, msgDriverNotFound, "Failed to update user", msgUsernameExists)
		}
	} else {
		user, err = s.userRepo.GetByDriverID(ctx, id)
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, utils.NewInternalError("Failed to get user", err)
		}
	}

	username := ""
	if user != nil {
		username = user.Username
	}

	return driverView(driver, username), nil
}

func (s *driverService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		return storeError(err, msgDriverNotFound, "Failed to delete driver")
	}

	log := s.logger.WithContext(ctx).WithField("driver_id", id.Hex())

	if err := s.userRepo.DeleteByDriverID(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete driver user")
		return utils.NewInternalError("Failed to delete driver user", err)
	}

	cleared, err := s.carRepo.ClearDriver(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to unassign driver from cars")
		return utils.NewInternalError("Failed to unassign driver from cars", err)
	}

	log.WithField("cars_cleared", cleared).Info("Driver deleted")
	return nil
}

func (s *driverService) List(ctx context.Context, filter *models.DriverFilter) ([]*models.DriverView, error) {
	if filter == nil {
		filter = &models.DriverFilter{}
	}
	drivers, err := s.driverRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list drivers", err)
	}
	return drivers, nil
}

func (s *driverService) ListNames(ctx context.Context) ([]*models.NamedItem, error) {
	names, err := s.driverRepo.ListNames(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to list drivers", err)
	}
	return names, nil
}

func (s *driverService) ensureNameAvailable(ctx context.Context, firstName, lastName string, self *primitive.ObjectID) error {
	existing, err := s.driverRepo.GetByName(ctx, firstName, lastName)
	switch {
	case err == nil:
		if takenBy(existing.ID, self) {
			return utils.NewConflictError(msgNameExists)
		}
		return nil
	case errors.Is(err, interfaces.ErrNotFound):
		return nil
	default:
		return utils.NewInternalError("Failed to check driver name", err)
	}
}

func (s *driverService) ensureUsernameAvailable(ctx context.Context, username string, self *primitive.ObjectID) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.DriverID == nil || takenBy(*existing.DriverID, self) {
			return utils.NewConflictError(msgUsernameExists)
		}
		return nil
	case errors.Is(err, interfaces.ErrNotFound):
		return nil
	default:
		return utils.NewInternalError("Failed to check username", err)
	}
}

func driverView(driver *models.Driver, username string) *models.DriverView {
	return &models.DriverView{
		ID:        driver.ID,
		Name:      driver.Name(),
		FirstName: driver.FirstName,
		LastName:  driver.LastName,
		PhoneNo:   driver.PhoneNo,
		Username:  username,
	}
}
