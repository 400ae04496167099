package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/services/mocks"
	"fleetpulse/internal/utils"
)

func newDriverRouter(t *testing.T) (*mocks.MockDriverService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockDriverService(ctrl)
	h := NewDriverHandler(service)

	router := gin.New()
	router.PUT("/api/drivers", h.GetDrivers)
	router.GET("/api/drivers/list", h.GetDriverNames)
	router.GET("/api/drivers/:id", h.GetDriver)
	router.POST("/api/drivers", h.CreateDriver)
	router.PUT("/api/drivers/:id", h.UpdateDriver)
	router.DELETE("/api/drivers/:id", h.DeleteDriver)
	return service, router
}

func TestDriverHandler_FilterBody(t *testing.T) {
	service, router := newDriverRouter(t)

	service.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter *models.DriverFilter) ([]*models.DriverView, error) {
			require.NotNil(t, filter.FirstName)
			assert.Equal(t, "ad", *filter.FirstName)
			assert.Nil(t, filter.LastName)
			return []*models.DriverView{{ID: primitive.NewObjectID(), Name: "Ada Lovelace"}}, nil
		})

	w, env := perform(t, router, http.MethodPut, "/api/drivers", `{"first_name":"ad"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
}

func TestDriverHandler_FilterWithoutBodyListsAll(t *testing.T) {
	service, router := newDriverRouter(t)

	service.EXPECT().List(gomock.Any(), &models.DriverFilter{}).Return([]*models.DriverView{}, nil)

	w, env := perform(t, router, http.MethodPut, "/api/drivers", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, *env.Count)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestDriverHandler_ListRouteIsNotAnID(t *testing.T) {
	service, router := newDriverRouter(t)

	service.EXPECT().ListNames(gomock.Any()).Return([]*models.NamedItem{{ID: primitive.NewObjectID(), Name: "Ada Lovelace"}}, nil)

	w, _ := perform(t, router, http.MethodGet, "/api/drivers/list", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDriverHandler_Create(t *testing.T) {
	service, router := newDriverRouter(t)
	id := primitive.NewObjectID()

	service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&models.DriverView{ID: id, Name: "Ada Lovelace"}, nil)

	w, env := perform(t, router, http.MethodPost, "/api/drivers",
		`{"first_name":"Ada","last_name":"Lovelace","username":"ada","password":"password1","phone_no":"555-123-4567"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
}

func TestDriverHandler_Create_Conflict(t *testing.T) {
	service, router := newDriverRouter(t)

	service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, utils.NewConflictError("Name already exists"))

	w, env := perform(t, router, http.MethodPost, "/api/drivers", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name already exists", env.Error)
}

func TestDriverHandler_Get_NotFound(t *testing.T) {
	service, router := newDriverRouter(t)
	id := primitive.NewObjectID()

	service.EXPECT().Get(gomock.Any(), id).Return(nil, utils.NewNotFoundError("The driver not found"))

	w, env := perform(t, router, http.MethodGet, "/api/drivers/"+id.Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "The driver not found", env.Error)
}

func TestDriverHandler_Delete(t *testing.T) {
	service, router := newDriverRouter(t)
	id := primitive.NewObjectID()

	service.EXPECT().Delete(gomock.Any(), id).Return(nil)

	w, env := perform(t, router, http.MethodDelete, "/api/drivers/"+id.Hex(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{}`, string(env.Data))
}

func TestHealthHandler(t *testing.T) {
	healthy := NewHealthHandler(map[string]HealthCheck{
		"mongodb": func(context.Context) error { return nil },
	}, time.Second)
	degraded := NewHealthHandler(map[string]HealthCheck{
		"mongodb":  func(context.Context) error { return nil },
		"rabbitmq": func(context.Context) error { return errors.New("connection closed") },
	}, time.Second)

	router := gin.New()
	router.GET("/ok", healthy.Health)
	router.GET("/degraded", degraded.Health)

	w, env := perform(t, router, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = perform(t, router, http.MethodGet, "/degraded", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Data), "connection closed")
}
