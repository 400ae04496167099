package config

import (
	"time"
)

// Failure policies for deliveries whose processing failed for infrastructure
// reasons. Invalid input is always acknowledged and dropped.
const (
	FailurePolicyRequeue    = "requeue"
	FailurePolicyDeadLetter = "dead_letter"
	FailurePolicyDrop       = "drop"
)

type RabbitMQConfig struct {
	URL            string        `yaml:"url"`
	Exchange       string        `yaml:"exchange"`
	EmergencyQueue string        `yaml:"emergency_queue"`
	RoutingKeys    []string      `yaml:"routing_keys"`
	Prefetch       int           `yaml:"prefetch"`
	FailurePolicy  string        `yaml:"failure_policy"`
	HandlerTimeout time.Duration `yaml:"handler_timeout"`
	PublishTimeout time.Duration `yaml:"publish_timeout"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`
}

func loadRabbitMQConfig() *RabbitMQConfig {
	return &RabbitMQConfig{
		URL:            getEnv("RABBITMQ_HOST", ""),
		Exchange:       getEnv("RABBITMQ_EXCHANGE", "direct_logs"),
		EmergencyQueue: getEnv("RABBITMQ_EMERGENCY_QUEUE", "emergency"),
		RoutingKeys:    getEnvAsSlice("RABBITMQ_EMERGENCY_ROUTING_KEYS", []string{}),
		Prefetch:       getEnvAsInt("RABBITMQ_PREFETCH", 10),
		FailurePolicy:  getEnv("RABBITMQ_FAILURE_POLICY", FailurePolicyRequeue),
		HandlerTimeout: getEnvAsDuration("RABBITMQ_HANDLER_TIMEOUT", 10*time.Second),
		PublishTimeout: getEnvAsDuration("RABBITMQ_PUBLISH_TIMEOUT", 5*time.Second),
		ReconnectDelay: getEnvAsDuration("RABBITMQ_RECONNECT_DELAY", 2*time.Second),
	}
}
