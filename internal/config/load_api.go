package config

import (
	"log/slog"
	"time"
)

type Config struct {
	Port              string
	APIBaseURL        string
	APITimeout        time.Duration
	RabbitURI         string
	RabbitExchange    string // vazio = não publica eventos
	LogLevel          slog.Level
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	NotificationsMax  int
	Polling           PollingConfig
}

func Load() *Config {
	fc := loadFile()
	return &Config{
		Port:              getenvAny(firstNonEmpty(fc.HTTP.Port, "8080"), "PORT", "API_PORT"),
		APIBaseURL:        getenv("API_BASE_URL", firstNonEmpty(fc.API.BaseURL, "http://localhost:8000/api/v1")),
		APITimeout:        parseDuration("API_TIMEOUT", durationOr(fc.API.Timeout, 30*time.Second)),
		RabbitURI:         getenvAny(fc.Rabbit.URI, "RABBITMQ_URL", "RABBIT_URI"),
		RabbitExchange:    getenvAny(firstNonEmpty(fc.Rabbit.Exchange, "vincipitch_eventos"), "RABBITMQ_EXCHANGE"),
		LogLevel:          parseLevel(getenv("LOG_LEVEL", firstNonEmpty(fc.LogLevel, "info"))),
		ReadHeaderTimeout: parseDuration("READ_HEADER_TIMEOUT", durationOr(fc.HTTP.ReadHeaderTimeout, 5*time.Second)),
		ShutdownTimeout:   parseDuration("SHUTDOWN_TIMEOUT", durationOr(fc.HTTP.ShutdownTimeout, 10*time.Second)),
		NotificationsMax:  parseInt("NOTIFICATIONS_MAX", intOr(fc.Notifications.Max, 20)),
		Polling:           loadPolling(fc),
	}
}
