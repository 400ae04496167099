package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/mocks"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
)

const testSecret = "test-secret"

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	service := NewAuthService(users, testSecret, time.Hour, logger.NewNop())

	hashed, err := hashPassword("password1")
	require.NoError(t, err)
	user := &models.User{ID: primitive.NewObjectID(), Username: "admin", Password: hashed, Role: models.UserRoleAdmin}

	users.EXPECT().GetByUsername(gomock.Any(), "admin").Return(user, nil)

	resp, err := service.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, models.UserRoleAdmin, resp.Role)

	claims, err := utils.ValidateToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	service := NewAuthService(users, testSecret, time.Hour, logger.NewNop())

	hashed, err := hashPassword("password1")
	require.NoError(t, err)
	users.EXPECT().GetByUsername(gomock.Any(), "admin").Return(&models.User{Username: "admin", Password: hashed}, nil)

	_, err = service.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "password2"})
	require.Error(t, err)
	assert.Equal(t, 401, utils.StatusFor(err))
	assert.Equal(t, "Invalid credentials", utils.MessageOf(err))
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	service := NewAuthService(users, testSecret, time.Hour, logger.NewNop())

	users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(nil, errNotFound)

	_, err := service.Login(context.Background(), &models.LoginRequest{Username: "ghost", Password: "password1"})
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
}

func TestAuthService_Login_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewAuthService(mocks.NewMockUserRepository(ctrl), "", time.Hour, logger.NewNop())

	_, err := service.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "password1"})
	assert.ErrorIs(t, err, ErrAuthDisabled)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	service := NewAuthService(users, testSecret, time.Hour, logger.NewNop())

	users.EXPECT().GetByUsername(gomock.Any(), "admin").Return(nil, errNotFound)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		assert.Equal(t, models.UserRoleAdmin, u.Role)
		assert.Nil(t, u.DriverID)
		assert.True(t, checkPassword("password1", u.Password))
		return nil
	})

	require.NoError(t, service.EnsureAdmin(context.Background(), "admin", "password1"))
}

func TestAuthService_EnsureAdmin_ExistingOrUnset(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	service := NewAuthService(users, testSecret, time.Hour, logger.NewNop())

	users.EXPECT().GetByUsername(gomock.Any(), "admin").Return(&models.User{Username: "admin"}, nil)

	require.NoError(t, service.EnsureAdmin(context.Background(), "admin", "password1"))
	require.NoError(t, service.EnsureAdmin(context.Background(), "", ""))
}
