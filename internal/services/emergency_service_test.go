package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/repositories/mocks"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
)

type broadcastCall struct {
	event   string
	payload interface{}
}

type recordingBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
	err   error
}

func (b *recordingBroadcaster) Broadcast(event string, payload interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{event: event, payload: payload})
	return b.err
}

func (b *recordingBroadcaster) Calls() []broadcastCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]broadcastCall(nil), b.calls...)
}

type emergencyFixture struct {
	emergencies *mocks.MockEmergencyRepository
	cars        *mocks.MockCarRepository
	broadcaster *recordingBroadcaster
	service     EmergencyService
}

func newEmergencyFixture(t *testing.T) *emergencyFixture {
	ctrl := gomock.NewController(t)
	f := &emergencyFixture{
		emergencies: mocks.NewMockEmergencyRepository(ctrl),
		cars:        mocks.NewMockCarRepository(ctrl),
		broadcaster: &recordingBroadcaster{},
	}
	f.service = NewEmergencyService(f.emergencies, f.cars, f.broadcaster, time.UTC, logger.NewNop())
	return f
}

func emergencyInput(t *testing.T, body string) models.EmergencyInput {
	t.Helper()
	var input models.EmergencyInput
	require.NoError(t, json.Unmarshal([]byte(body), &input))
	return input
}

// assignID mimics the repository filling in the id on insert.
func assignID(id primitive.ObjectID) func(context.Context, *models.Emergency) error {
	return func(_ context.Context, e *models.Emergency) error {
		e.ID = id
		e.CreatedAt = time.Now().UTC()
		return nil
	}
}

func TestEmergencyService_Create_DefaultsStatusAndBroadcasts(t *testing.T) {
	f := newEmergencyFixture(t)
	carID := primitive.NewObjectID()
	emergencyID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(true, nil)
	f.emergencies.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(assignID(emergencyID))

	payload, err := f.service.Create(context.Background(),
		emergencyInput(t, `{"car_id":"`+carID.Hex()+`","latitude":40.0,"longitude":-73.0}`), SourceHTTP)
	require.NoError(t, err)

	want := models.EmergencyPayload{
		ID:        emergencyID,
		CarID:     carID,
		Status:    models.EmergencyStatusPending,
		Latitude:  40.0,
		Longitude: -73.0,
	}
	assert.Equal(t, want, *payload)

	calls := f.broadcaster.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, models.EmergencyEvent, calls[0].event)
	assert.Equal(t, want, calls[0].payload)
}

func TestEmergencyService_Create_SameResultFromEverySource(t *testing.T) {
	carID := primitive.NewObjectID()
	emergencyID := primitive.NewObjectID()
	body := `{"car_id":"` + carID.Hex() + `","status":"inProgress","latitude":1.5,"longitude":2.5}`

	var stored []models.Emergency
	var payloads []interface{}
	for _, source := range []string{SourceHTTP, SourceQueue} {
		f := newEmergencyFixture(t)
		f.cars.EXPECT().Exists(gomock.Any(), carID).Return(true, nil)
		f.emergencies.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e *models.Emergency) error {
				e.ID = emergencyID
				stored = append(stored, *e)
				return nil
			})

		_, err := f.service.Create(context.Background(), emergencyInput(t, body), source)
		require.NoError(t, err)
		require.Len(t, f.broadcaster.Calls(), 1)
		payloads = append(payloads, f.broadcaster.Calls()[0].payload)
	}

	require.Len(t, stored, 2)
	assert.Equal(t, stored[0], stored[1])
	assert.Equal(t, payloads[0], payloads[1])
}

func TestEmergencyService_Create_RejectsBeforeWriting(t *testing.T) {
	carID := primitive.NewObjectID()
	hex := carID.Hex()
	tests := []struct {
		name     string
		body     string
		msg      string
		knownCar bool
	}{
		{"missing car", `{"latitude":1,"longitude":2}`, "Please add a car_id", false},
		{"malformed car", `{"car_id":"abc","latitude":1,"longitude":2}`, "Invalid car_id", false},
		{"bad status", `{"car_id":"` + hex + `","status":"done","latitude":1,"longitude":2}`, "Status should be pending, inProgress or complete", true},
		{"missing latitude", `{"car_id":"` + hex + `","longitude":2}`, "Please add a latitude", true},
		{"string latitude", `{"car_id":"` + hex + `","latitude":"1","longitude":2}`, "Latitude should be number", true},
		{"missing longitude", `{"car_id":"` + hex + `","latitude":1}`, "Please add a longitude", true},
		{"string longitude", `{"car_id":"` + hex + `","latitude":1,"longitude":"2"}`, "Longitude should be number", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEmergencyFixture(t)
			if tt.knownCar {
				f.cars.EXPECT().Exists(gomock.Any(), carID).Return(true, nil)
			}

			_, err := f.service.Create(context.Background(), emergencyInput(t, tt.body), SourceQueue)
			require.Error(t, err)
			assert.Equal(t, utils.KindValidation, utils.KindOf(err))
			assert.Equal(t, tt.msg, utils.MessageOf(err))
			assert.Empty(t, f.broadcaster.Calls())
		})
	}
}

func TestEmergencyService_Create_UnknownCar(t *testing.T) {
	f := newEmergencyFixture(t)
	carID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(false, nil)

	_, err := f.service.Create(context.Background(),
		emergencyInput(t, `{"car_id":"`+carID.Hex()+`","latitude":1,"longitude":2}`), SourceQueue)
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, "The car not found", utils.MessageOf(err))
	assert.Empty(t, f.broadcaster.Calls())
}

func TestEmergencyService_Create_UnknownCarCheckedBeforeOtherFields(t *testing.T) {
	f := newEmergencyFixture(t)
	carID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(false, nil)

	_, err := f.service.Create(context.Background(),
		emergencyInput(t, `{"car_id":"`+carID.Hex()+`","status":"bogus"}`), SourceHTTP)
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, "The car not found", utils.MessageOf(err))
}

func TestEmergencyService_Create_StoreFailureLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewNop()
	log.SetOutput(&buf)

	ctrl := gomock.NewController(t)
	emergencies := mocks.NewMockEmergencyRepository(ctrl)
	cars := mocks.NewMockCarRepository(ctrl)
	service := NewEmergencyService(emergencies, cars, nil, time.UTC, log)

	carID := primitive.NewObjectID()
	cars.EXPECT().Exists(gomock.Any(), carID).Return(true, nil)
	emergencies.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	ctx := context.WithValue(context.Background(), logger.RequestIDKey, "req-42")
	_, err := service.Create(ctx, emergencyInput(t, `{"car_id":"`+carID.Hex()+`","latitude":1,"longitude":2}`), SourceHTTP)
	require.Error(t, err)

	assert.Contains(t, buf.String(), "Failed to create emergency")
	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestEmergencyService_Create_StoreFailureIsInternal(t *testing.T) {
	f := newEmergencyFixture(t)
	carID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(true, nil)
	f.emergencies.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	_, err := f.service.Create(context.Background(),
		emergencyInput(t, `{"car_id":"`+carID.Hex()+`","latitude":1,"longitude":2}`), SourceHTTP)
	require.Error(t, err)
	assert.Equal(t, utils.KindInternal, utils.KindOf(err))
	assert.Empty(t, f.broadcaster.Calls())
}

func TestEmergencyService_Create_BroadcastFailureKeepsRecord(t *testing.T) {
	f := newEmergencyFixture(t)
	f.broadcaster.err = errors.New("hub stopped")
	carID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(true, nil)
	f.emergencies.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(assignID(primitive.NewObjectID()))

	payload, err := f.service.Create(context.Background(),
		emergencyInput(t, `{"car_id":"`+carID.Hex()+`","latitude":1,"longitude":2}`), SourceHTTP)
	require.NoError(t, err)
	assert.Equal(t, carID, payload.CarID)
}

func TestEmergencyService_Update_BroadcastsPostUpdateState(t *testing.T) {
	f := newEmergencyFixture(t)
	id := primitive.NewObjectID()
	carID := primitive.NewObjectID()

	f.emergencies.EXPECT().
		Update(gomock.Any(), id, map[string]interface{}{"status": models.EmergencyStatusComplete}).
		Return(&models.Emergency{
			ID:        id,
			CarID:     carID,
			Status:    models.EmergencyStatusComplete,
			Latitude:  40,
			Longitude: -73,
		}, nil)

	payload, err := f.service.Update(context.Background(), id, emergencyInput(t, `{"status":"complete"}`))
	require.NoError(t, err)

	want := models.EmergencyPayload{ID: id, CarID: carID, Status: models.EmergencyStatusComplete, Latitude: 40, Longitude: -73}
	assert.Equal(t, want, *payload)

	calls := f.broadcaster.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, want, calls[0].payload)
}

func TestEmergencyService_Update_UnknownCarLeavesRecordUntouched(t *testing.T) {
	f := newEmergencyFixture(t)
	id := primitive.NewObjectID()
	carID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(false, nil)
	f.emergencies.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := f.service.Update(context.Background(), id, emergencyInput(t, `{"car_id":"`+carID.Hex()+`"}`))
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, "The car not found", utils.MessageOf(err))
	assert.Empty(t, f.broadcaster.Calls())
}

func TestEmergencyService_Update_UnknownCarCheckedBeforeStatus(t *testing.T) {
	f := newEmergencyFixture(t)
	carID := primitive.NewObjectID()

	f.cars.EXPECT().Exists(gomock.Any(), carID).Return(false, nil)

	_, err := f.service.Update(context.Background(), primitive.NewObjectID(),
		emergencyInput(t, `{"car_id":"`+carID.Hex()+`","status":"closed"}`))
	assert.Equal(t, "The car not found", utils.MessageOf(err))
}

func TestEmergencyService_Update_UnknownEmergency(t *testing.T) {
	f := newEmergencyFixture(t)
	id := primitive.NewObjectID()

	f.emergencies.EXPECT().Update(gomock.Any(), id, gomock.Any()).
		Return(nil, fmt.Errorf("failed to update emergency: %w", interfaces.ErrNotFound))

	_, err := f.service.Update(context.Background(), id, emergencyInput(t, `{"latitude":3}`))
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	assert.Equal(t, "The emergency not found", utils.MessageOf(err))
	assert.Empty(t, f.broadcaster.Calls())
}

func TestEmergencyService_Update_EmptyBodyReadsCurrentState(t *testing.T) {
	f := newEmergencyFixture(t)
	id := primitive.NewObjectID()

	f.emergencies.EXPECT().GetByID(gomock.Any(), id).Return(&models.Emergency{ID: id, Status: models.EmergencyStatusPending}, nil)

	payload, err := f.service.Update(context.Background(), id, emergencyInput(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusPending, payload.Status)
}

func TestEmergencyService_List_FormatsTimeInLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	emergencies := mocks.NewMockEmergencyRepository(ctrl)
	loc := time.FixedZone("UTC+2", 2*60*60)
	service := NewEmergencyService(emergencies, mocks.NewMockCarRepository(ctrl), nil, loc, logger.NewNop())

	items := []*models.EmergencyListItem{
		{ID: primitive.NewObjectID(), CarName: "a", CreatedAt: time.Date(2024, 1, 2, 12, 5, 0, 0, time.UTC)},
		{ID: primitive.NewObjectID(), CarName: "b", CreatedAt: time.Date(2024, 1, 2, 23, 30, 0, 0, time.UTC)},
	}
	emergencies.EXPECT().ListEnriched(gomock.Any()).Return(items, nil)

	got, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "02:05 pm", got[0].Time)
	assert.Equal(t, "01:30 am", got[1].Time)
}
