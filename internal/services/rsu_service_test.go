package services

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/mocks"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
)

func newRSUFixture(t *testing.T) (*mocks.MockRSURepository, RSUService) {
	ctrl := gomock.NewController(t)
	rsus := mocks.NewMockRSURepository(ctrl)
	return rsus, NewRSUService(rsus, logger.NewNop())
}

func TestRSUService_Create(t *testing.T) {
	rsus, service := newRSUFixture(t)
	id := primitive.NewObjectID()

	rsus.EXPECT().GetByName(gomock.Any(), "rsu-1").Return(nil, errNotFound)
	rsus.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *models.RSU) error {
		r.ID = id
		return nil
	})

	view, err := service.Create(context.Background(), &models.RSURequest{
		Name:             strPtr("rsu-1"),
		RecommendedSpeed: strPtr("100"),
	})
	require.NoError(t, err)
	assert.Equal(t, &models.RSUView{ID: id, Name: "rsu-1", RecommendedSpeed: "100"}, view)
}

func TestRSUService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name string
		req  *models.RSURequest
		msg  string
	}{
		{"missing name", &models.RSURequest{RecommendedSpeed: strPtr("100")}, "Please add a name"},
		{"missing speed", &models.RSURequest{Name: strPtr("rsu-1")}, "Please add a recommended speed"},
		{"spaces", &models.RSURequest{Name: strPtr("rsu 1"), RecommendedSpeed: strPtr("100")}, "Name should not contain spaces"},
		{"speed", &models.RSURequest{Name: strPtr("rsu-1"), RecommendedSpeed: strPtr("fast")}, "Recommended speed should be a valid number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, service := newRSUFixture(t)

			_, err := service.Create(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.msg, utils.MessageOf(err))
		})
	}
}

func TestRSUService_Update_DuplicateName(t *testing.T) {
	rsus, service := newRSUFixture(t)
	id := primitive.NewObjectID()

	rsus.EXPECT().GetByName(gomock.Any(), "rsu-2").Return(&models.RSU{ID: primitive.NewObjectID()}, nil)

	_, err := service.Update(context.Background(), id, &models.RSURequest{Name: strPtr("rsu-2")})
	require.Error(t, err)
	assert.Equal(t, "Name already exists", utils.MessageOf(err))
}

func TestRSUService_Update_NotFound(t *testing.T) {
	rsus, service := newRSUFixture(t)
	id := primitive.NewObjectID()

	rsus.EXPECT().Update(gomock.Any(), id, map[string]interface{}{"recommended_speed": "80"}).Return(nil, errNotFound)

	_, err := service.Update(context.Background(), id, &models.RSURequest{RecommendedSpeed: strPtr("80")})
	require.Error(t, err)
	assert.Equal(t, 404, utils.StatusFor(err))
	assert.Equal(t, "The RSU not found", utils.MessageOf(err))
}

func TestRSUService_Get_NotFound(t *testing.T) {
	rsus, service := newRSUFixture(t)
	id := primitive.NewObjectID()

	rsus.EXPECT().GetView(gomock.Any(), id).Return(nil, errNotFound)

	_, err := service.Get(context.Background(), id)
	assert.Equal(t, "The RSU not found", utils.MessageOf(err))
}
