package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"fleetpulse/pkg/logger"
)

var (
	ErrMissingURL      = errors.New("rabbitmq url is not configured")
	ErrNotConnected    = errors.New("rabbitmq client is not connected")
	ErrConsumerStopped = errors.New("rabbitmq delivery channel closed")
)

// Outcome tells the consumer loop how to settle a delivery.
type Outcome int

const (
	// OutcomeProcessed acks the delivery.
	OutcomeProcessed Outcome = iota
	// OutcomeInvalid acks the delivery and logs a warning. Redelivery would
	// fail the same way.
	OutcomeInvalid
	// OutcomeTransient is settled according to the FailurePolicy.
	OutcomeTransient
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

type FailurePolicy string

const (
	FailurePolicyRequeue    FailurePolicy = "requeue"
	FailurePolicyDeadLetter FailurePolicy = "dead_letter"
	FailurePolicyDrop       FailurePolicy = "drop"
)

// DeadLetterSuffix is appended to a queue name to get its dead letter queue.
const DeadLetterSuffix = ".dlq"

type Config struct {
	URL            string
	Exchange       string
	FailurePolicy  FailurePolicy
	PublishTimeout time.Duration
}

type ConsumeOptions struct {
	Queue          string
	RoutingKeys    []string
	Durable        bool
	AutoAck        bool
	Prefetch       int
	HandlerTimeout time.Duration
}

// Message is the part of a delivery handlers get to see.
type Message struct {
	Body        []byte
	RoutingKey  string
	DeliveryTag uint64
	Redelivered bool
}

type Handler func(ctx context.Context, msg Message) Outcome

// amqpChannel is the subset of *amqp091.Channel the client uses.
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// RabbitMQ owns one broker connection, one publish channel created at
// Connect, and one channel per consumer.
type RabbitMQ struct {
	cfg    Config
	logger *logger.Logger

	mu          sync.Mutex
	conn        *amqp091.Connection
	pubCh       amqpChannel
	consumerChs []amqpChannel
	openChannel func() (amqpChannel, error)
}

func NewRabbitMQ(cfg Config, log *logger.Logger) *RabbitMQ {
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = FailurePolicyRequeue
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}
	return &RabbitMQ{
		cfg:    cfg,
		logger: log.WithComponent("rabbitmq"),
	}
}

// Connect dials the broker, declares the topic exchange and opens the
// publish channel.
func (c *RabbitMQ) Connect(ctx context.Context) error {
	if c.cfg.URL == "" {
		return ErrMissingURL
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := amqp091.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open publish channel: %w", err)
	}

	if c.cfg.Exchange != "" {
		if err := ch.ExchangeDeclare(c.cfg.Exchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to declare exchange %s: %w", c.cfg.Exchange, err)
		}
	}

	c.mu.Lock()
	c.conn = conn
	c.pubCh = ch
	c.consumerChs = nil
	c.openChannel = func() (amqpChannel, error) { return conn.Channel() }
	c.mu.Unlock()

	go c.watchConnection(conn.NotifyClose(make(chan *amqp091.Error, 1)))

	c.logger.WithField("exchange", c.cfg.Exchange).Info("Connected to RabbitMQ")
	return nil
}

// watchConnection logs asynchronous connection failures. The channel is
// closed without a value on a clean shutdown.
func (c *RabbitMQ) watchConnection(closed <-chan *amqp091.Error) {
	for amqpErr := range closed {
		c.logger.WithFields(map[string]interface{}{
			"code":   amqpErr.Code,
			"reason": amqpErr.Reason,
		}).Error("RabbitMQ connection closed unexpectedly")
	}
}

// reconnect dials again when a previously open connection has been lost.
// It does nothing while the connection is up or before the first Connect.
func (c *RabbitMQ) reconnect(ctx context.Context) error {
	c.mu.Lock()
	lost := c.conn != nil && c.conn.IsClosed()
	c.mu.Unlock()
	if !lost {
		return nil
	}

	c.logger.Warn("RabbitMQ connection lost, reconnecting")
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("failed to reconnect to rabbitmq: %w", err)
	}
	return nil
}

// Publish declares queueName as durable and sends payload as a persistent
// JSON message through the default exchange.
func (c *RabbitMQ) Publish(ctx context.Context, queueName string, payload []byte) error {
	return c.publish(ctx, queueName, payload, nil)
}

func (c *RabbitMQ) publish(ctx context.Context, queueName string, payload []byte, headers amqp091.Table) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pubCh == nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queueName, ErrNotConnected)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.PublishTimeout)
	defer cancel()

	if _, err := c.pubCh.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queueName, err)
	}

	err := c.pubCh.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			MessageId:    uuid.NewString(),
			Headers:      headers,
		})
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", queueName, err)
	}

	return nil
}

// Consume declares and binds the queue, then settles every delivery from
// handler's outcome until ctx is cancelled.
func (c *RabbitMQ) Consume(ctx context.Context, opts ConsumeOptions, handler Handler) error {
	if err := c.reconnect(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	open := c.openChannel
	c.mu.Unlock()
	if open == nil {
		return ErrNotConnected
	}

	ch, err := open()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel: %w", err)
	}

	c.mu.Lock()
	c.consumerChs = append(c.consumerChs, ch)
	c.mu.Unlock()

	if _, err := ch.QueueDeclare(opts.Queue, opts.Durable, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", opts.Queue, err)
	}

	for _, key := range opts.RoutingKeys {
		if err := ch.QueueBind(opts.Queue, key, c.cfg.Exchange, false, nil); err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"queue":       opts.Queue,
				"routing_key": key,
			}).Warn("Failed to bind queue")
		}
	}

	if opts.Prefetch > 0 {
		if err := ch.Qos(opts.Prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set qos on %s: %w", opts.Queue, err)
		}
	}

	tag := fmt.Sprintf("%s-%s", opts.Queue, uuid.NewString())
	deliveries, err := ch.Consume(opts.Queue, tag, opts.AutoAck, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer on %s: %w", opts.Queue, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"queue":        opts.Queue,
		"consumer_tag": tag,
		"auto_ack":     opts.AutoAck,
	}).Info("Consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return ErrConsumerStopped
			}
			c.handleDelivery(ctx, opts, d, handler)
		}
	}
}

func (c *RabbitMQ) handleDelivery(ctx context.Context, opts ConsumeOptions, d amqp091.Delivery, handler Handler) {
	handlerCtx := ctx
	if opts.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		handlerCtx, cancel = context.WithTimeout(ctx, opts.HandlerTimeout)
		defer cancel()
	}

	outcome := handler(handlerCtx, Message{
		Body:        d.Body,
		RoutingKey:  d.RoutingKey,
		DeliveryTag: d.DeliveryTag,
		Redelivered: d.Redelivered,
	})

	if opts.AutoAck {
		c.logger.LogQueueDelivery(opts.Queue, d.DeliveryTag, outcome.String(), nil)
		return
	}

	c.settle(ctx, opts.Queue, d, outcome)
}

func (c *RabbitMQ) settle(ctx context.Context, queue string, d amqp091.Delivery, outcome Outcome) {
	var err error

	switch outcome {
	case OutcomeProcessed:
		err = d.Ack(false)
	case OutcomeInvalid:
		c.logger.WithFields(map[string]interface{}{
			"queue":        queue,
			"delivery_tag": d.DeliveryTag,
		}).Warn("Dropping invalid delivery")
		err = d.Ack(false)
	case OutcomeTransient:
		switch c.cfg.FailurePolicy {
		case FailurePolicyDeadLetter:
			dlq := queue + DeadLetterSuffix
			headers := amqp091.Table{"x-original-queue": queue, "x-original-routing-key": d.RoutingKey}
			if pubErr := c.publish(context.WithoutCancel(ctx), dlq, d.Body, headers); pubErr != nil {
				c.logger.WithError(pubErr).WithField("queue", dlq).Error("Dead letter publish failed, requeueing")
				err = d.Nack(false, true)
				break
			}
			err = d.Ack(false)
		case FailurePolicyDrop:
			c.logger.WithFields(map[string]interface{}{
				"queue":        queue,
				"delivery_tag": d.DeliveryTag,
			}).Error("Dropping delivery after processing failure")
			err = d.Ack(false)
		default:
			err = d.Nack(false, true)
		}
	default:
		err = d.Nack(false, false)
	}

	c.logger.LogQueueDelivery(queue, d.DeliveryTag, outcome.String(), err)
}

// Ping reports whether the broker connection is open.
func (c *RabbitMQ) Ping(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil || c.conn.IsClosed() {
		return ErrNotConnected
	}
	return nil
}

// Close closes the consumer channels, the publish channel, then the
// connection.
func (c *RabbitMQ) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for _, ch := range c.consumerChs {
		if err := ch.Close(); err != nil && !errors.Is(err, amqp091.ErrClosed) {
			errs = append(errs, err)
		}
	}
	c.consumerChs = nil

	if c.pubCh != nil {
		if err := c.pubCh.Close(); err != nil && !errors.Is(err, amqp091.ErrClosed) {
			errs = append(errs, err)
		}
		c.pubCh = nil
	}

	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp091.ErrClosed) {
			errs = append(errs, err)
		}
		c.conn = nil
	}
	c.openChannel = nil

	return errors.Join(errs...)
}
