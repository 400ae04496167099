package consumers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/services/mocks"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/messaging"
)

type stubQueue struct {
	opts    messaging.ConsumeOptions
	handler messaging.Handler
	err     error
}

func (q *stubQueue) Consume(_ context.Context, opts messaging.ConsumeOptions, handler messaging.Handler) error {
	q.opts = opts
	q.handler = handler
	return q.err
}

func newTestConsumer(t *testing.T) (*mocks.MockEmergencyService, *stubQueue, *EmergencyConsumer) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockEmergencyService(ctrl)
	queue := &stubQueue{}
	consumer := NewEmergencyConsumer(service, queue, messaging.ConsumeOptions{Queue: "emergency", Durable: true}, logger.NewNop())
	return service, queue, consumer
}

func TestEmergencyConsumer_Processed(t *testing.T) {
	service, _, consumer := newTestConsumer(t)
	carID := primitive.NewObjectID()

	service.EXPECT().
		Create(gomock.Any(), gomock.Any(), services.SourceQueue).
		DoAndReturn(func(_ context.Context, input models.EmergencyInput, _ string) (*models.EmergencyPayload, error) {
			assert.Equal(t, carID.Hex(), input.CarID)
			assert.Equal(t, 40.5, input.Latitude)
			assert.Equal(t, -73.25, input.Longitude)
			assert.Nil(t, input.Status)
			return &models.EmergencyPayload{ID: primitive.NewObjectID(), CarID: carID}, nil
		})

	body := []byte(`{"car_id":"` + carID.Hex() + `","latitude":40.5,"longitude":-73.25}`)
	outcome := consumer.Handle(context.Background(), messaging.Message{Body: body, DeliveryTag: 1})
	assert.Equal(t, messaging.OutcomeProcessed, outcome)
}

func TestEmergencyConsumer_MalformedJSONIsInvalid(t *testing.T) {
	_, _, consumer := newTestConsumer(t)

	for _, body := range []string{`{"car_id":`, `[1,2]`, `not json`} {
		outcome := consumer.Handle(context.Background(), messaging.Message{Body: []byte(body)})
		assert.Equal(t, messaging.OutcomeInvalid, outcome, body)
	}
}

func TestEmergencyConsumer_ClassifiesServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want messaging.Outcome
	}{
		{"validation", utils.NewValidationError("Please add a car_id"), messaging.OutcomeInvalid},
		{"unknown car", utils.NewNotFoundError("The car not found"), messaging.OutcomeInvalid},
		{"store down", utils.NewInternalError("Failed to create emergency", errors.New("no reachable servers")), messaging.OutcomeTransient},
		{"plain error", errors.New("boom"), messaging.OutcomeTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, consumer := newTestConsumer(t)
			service.EXPECT().Create(gomock.Any(), gomock.Any(), services.SourceQueue).Return(nil, tt.err)

			outcome := consumer.Handle(context.Background(), messaging.Message{Body: []byte(`{}`)})
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestEmergencyConsumer_StartRegistersHandler(t *testing.T) {
	service, queue, consumer := newTestConsumer(t)

	require.NoError(t, consumer.Start(context.Background()))
	assert.Equal(t, "emergency", queue.opts.Queue)
	assert.True(t, queue.opts.Durable)
	require.NotNil(t, queue.handler)

	service.EXPECT().Create(gomock.Any(), gomock.Any(), services.SourceQueue).
		Return(nil, utils.NewNotFoundError("The car not found"))
	assert.Equal(t, messaging.OutcomeInvalid, queue.handler(context.Background(), messaging.Message{Body: []byte(`{}`)}))

	queue.err = messaging.ErrConsumerStopped
	assert.ErrorIs(t, consumer.Start(context.Background()), messaging.ErrConsumerStopped)
}

// flakyQueue loses its deliveries a fixed number of times, then keeps the
// consumer registered until ctx is cancelled.
type flakyQueue struct {
	failures int32
	calls    atomic.Int32
	serving  chan struct{}
}

func (q *flakyQueue) Consume(ctx context.Context, _ messaging.ConsumeOptions, _ messaging.Handler) error {
	if q.calls.Add(1) <= q.failures {
		return messaging.ErrConsumerStopped
	}
	close(q.serving)
	<-ctx.Done()
	return nil
}

func TestEmergencyConsumer_RunRegistersAgainAfterBrokerLoss(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := &flakyQueue{failures: 2, serving: make(chan struct{})}
	consumer := NewEmergencyConsumer(mocks.NewMockEmergencyService(ctrl), queue, messaging.ConsumeOptions{Queue: "emergency"}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-queue.serving:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not register again after losing deliveries")
	}
	assert.Equal(t, int32(3), queue.calls.Load())
	require.NoError(t, ctx.Err())

	select {
	case <-done:
		t.Fatal("Run returned while its context was still live")
	default:
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEmergencyConsumer_RunStopsWhileWaitingToRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := &flakyQueue{failures: 1 << 20, serving: make(chan struct{})}
	consumer := NewEmergencyConsumer(mocks.NewMockEmergencyService(ctrl), queue, messaging.ConsumeOptions{Queue: "emergency"}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.Run(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool { return queue.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, int32(1), queue.calls.Load())
}
