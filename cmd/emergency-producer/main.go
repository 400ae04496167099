package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"fleetpulse/internal/config"
	"fleetpulse/internal/models"
	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/messaging"
)

// emergency-producer publishes a single emergency to the consumer queue.
func main() {
	carID := flag.String("car", "", "car id (24 hex chars)")
	lat := flag.Float64("lat", 0, "latitude")
	lng := flag.Float64("lng", 0, "longitude")
	status := flag.String("status", "", "pending or complete, empty for the default")
	queue := flag.String("queue", "", "queue name, defaults to RABBITMQ_EMERGENCY_QUEUE")
	flag.Parse()

	if *carID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *queue == "" {
		*queue = cfg.RabbitMQ.EmergencyQueue
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		AppName: "emergency-producer",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	input := models.EmergencyInput{
		CarID:     *carID,
		Latitude:  *lat,
		Longitude: *lng,
	}
	if *status != "" {
		input.Status = *status
	}
	payload, err := json.Marshal(input)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to encode emergency")
	}

	ctx := context.Background()
	broker := messaging.NewRabbitMQ(messaging.Config{
		URL:            cfg.RabbitMQ.URL,
		PublishTimeout: cfg.RabbitMQ.PublishTimeout,
	}, appLogger)
	if err := broker.Connect(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to RabbitMQ")
	}
	defer broker.Close()

	if err := broker.Publish(ctx, *queue, payload); err != nil {
		_ = broker.Close()
		appLogger.WithError(err).Fatal("Failed to publish emergency")
	}

	appLogger.WithFields(map[string]interface{}{
		"queue":  *queue,
		"car_id": *carID,
	}).Info("Emergency published")
}
