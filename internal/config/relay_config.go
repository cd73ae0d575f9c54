package config

import (
	"os"

	"github.com/joho/godotenv"
)

// RelayConfig holds configuration for the outbox relay process.
// This is a minimal config that only includes what the relay needs.
type RelayConfig struct {
	DatabaseURL          string
	RabbitMQURL          string
	AppointmentQueueName string
}

func LoadRelayConfig() *RelayConfig {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	queueName := os.Getenv("APPOINTMENT_QUEUE_NAME")
	if queueName == "" {
		queueName = "appointments"
	}

	return &RelayConfig{
		DatabaseURL:          dbURL,
		RabbitMQURL:          rabbitURL,
		AppointmentQueueName: queueName,
	}
}
