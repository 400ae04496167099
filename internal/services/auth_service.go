package services

//go:generate mockgen -source=auth_service.go -destination=mocks/auth_service_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
	"fleetpulse/pkg/logger"
)

const msgInvalidCredentials = "Invalid credentials"

var ErrAuthDisabled = errors.New("JWT_SECRET is not configured")

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)

	// EnsureAdmin creates the admin user when it does not exist yet. An empty
	// username is a no-op.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		logger:    logger.WithComponent("auth_service"),
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if s.jwtSecret == "" {
		return nil, utils.NewInternalError("Authentication is disabled", ErrAuthDisabled)
	}

	if err := validators.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.WithContext(ctx).WithField("username", req.Username).Warn("Login attempt with invalid credentials")
			return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, utils.NewInternalError("Failed to get user", err)
	}

	if !checkPassword(req.Password, user.Password) {
		s.logger.WithContext(ctx).WithField("username", req.Username).Warn("Login attempt with invalid credentials")
		return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
	}

	token, expiresAt, err := utils.GenerateAccessToken(user.ID.Hex(), string(user.Role), s.jwtSecret, s.tokenTTL, s.now())
	if err != nil {
		return nil, utils.NewInternalError("Failed to generate access token", err)
	}

	s.logger.WithContext(ctx).WithField("user_id", user.ID.Hex()).Info("User logged in")

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        user.Role,
	}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return utils.NewInternalError("Failed to get admin user", err)
	}

	if err := validators.ValidateLogin(&models.LoginRequest{Username: username, Password: password}); err != nil {
		return err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: username,
		Password: hashed,
		Role:     models.UserRoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil
		}
		return utils.NewInternalError("Failed to create admin user", err)
	}

	s.logger.WithContext(ctx).WithField("username", username).Info("Admin user created")
	return nil
}
