package consumers

import (
	"context"
	"encoding/json"
	"time"

	"fleetpulse/internal/models"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/messaging"
)

// QueueConsumer is the part of the broker client the consumer needs.
type QueueConsumer interface {
	Consume(ctx context.Context, opts messaging.ConsumeOptions, handler messaging.Handler) error
}

// EmergencyConsumer feeds emergencies published by external producers into
// the same create path the HTTP API uses.
type EmergencyConsumer struct {
	service services.EmergencyService
	client  QueueConsumer
	opts    messaging.ConsumeOptions
	logger  *logger.Logger
}

func NewEmergencyConsumer(service services.EmergencyService, client QueueConsumer, opts messaging.ConsumeOptions, log *logger.Logger) *EmergencyConsumer {
	return &EmergencyConsumer{
		service: service,
		client:  client,
		opts:    opts,
		logger:  log.WithComponent("emergency_consumer").WithField("queue", opts.Queue),
	}
}

// Start blocks until ctx is cancelled or the broker stops delivering.
func (c *EmergencyConsumer) Start(ctx context.Context) error {
	c.logger.Info("Emergency consumer started")
	return c.client.Consume(ctx, c.opts, c.Handle)
}

const maxRetryDelay = time.Minute

// Run keeps the consumer registered until ctx is cancelled. When the broker
// stops delivering, the failure is logged and the consumer registers again
// after a growing delay. The HTTP API keeps serving meanwhile.
func (c *EmergencyConsumer) Run(ctx context.Context, retryDelay time.Duration) {
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	delay := retryDelay

	for {
		started := time.Now()
		err := c.Start(ctx)
		if ctx.Err() != nil {
			return
		}

		if time.Since(started) > maxRetryDelay {
			delay = retryDelay
		}
		c.logger.WithError(err).WithField("retry_in", delay.String()).Error("Emergency consumer stopped")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// Handle processes one delivery and classifies the result for settlement.
func (c *EmergencyConsumer) Handle(ctx context.Context, msg messaging.Message) messaging.Outcome {
	log := c.logger.WithField("delivery_tag", msg.DeliveryTag)

	var input models.EmergencyInput
	if err := json.Unmarshal(msg.Body, &input); err != nil {
		log.WithError(err).Warn("Discarding malformed emergency message")
		return messaging.OutcomeInvalid
	}

	payload, err := c.service.Create(ctx, input, services.SourceQueue)
	if err != nil {
		switch utils.KindOf(err) {
		case utils.KindValidation, utils.KindNotFound, utils.KindConflict:
			log.WithError(err).Warn("Rejected emergency message")
			return messaging.OutcomeInvalid
		default:
			log.WithError(err).Error("Failed to process emergency message")
			return messaging.OutcomeTransient
		}
	}

	log.WithEmergencyID(payload.ID).Debug("Emergency message processed")
	return messaging.OutcomeProcessed
}
