package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	BookingStoreURL string
	Port            string
	LogLevel        slog.Level
	TaskQueue       TaskQueueConfig
	Redis           *RedisConfig
	Mail            *MailConfig
	Delivery        *DeliveryConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	// TargetURL is the delivery endpoint the queued task calls back.
	TargetURL string

	GCloudProjectID             string
	GCloudLocationID            string
	GCloudQueueID               string
	GCloudInvokerServiceAccount string
	GCloudEndpoint              string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "reminders"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	targetURL := os.Getenv("REMINDER_DELIVERY_URL")
	if targetURL == "" {
		targetURL = "http://localhost:" + port + "/api/v1/reminders/deliver"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	mailConfig, err := LoadMailConfig()
	if err != nil {
		return nil, err
	}

	deliveryConfig, err := LoadDeliveryConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		BookingStoreURL: os.Getenv("BOOKING_STORE_URL"),
		Port:            port,
		LogLevel:        parseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,
			TargetURL:       targetURL,

			GCloudProjectID:             os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:            os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:               os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudInvokerServiceAccount: os.Getenv("GCLOUD_INVOKER_SERVICE_ACCOUNT"),
			GCloudEndpoint:              os.Getenv("GCLOUD_TASKS_ENDPOINT"),

			MaxRetries: maxRetries,
		},
		Redis:    redisConfig,
		Mail:     mailConfig,
		Delivery: deliveryConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
