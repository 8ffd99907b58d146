package config

import (
	"log/slog"
	"time"
)

type CLIConfig struct {
	APIBaseURL string
	APITimeout time.Duration
	LogLevel   slog.Level
	Polling    PollingConfig
}

func LoadCLIConfig() *CLIConfig {
	fc := loadFile()
	return &CLIConfig{
		APIBaseURL: getenv("API_BASE_URL", firstNonEmpty(fc.API.BaseURL, "http://localhost:8000/api/v1")),
		APITimeout: parseDuration("API_TIMEOUT", durationOr(fc.API.Timeout, 60*time.Second)),
		LogLevel:   parseLevel(getenv("LOG_LEVEL", firstNonEmpty(fc.LogLevel, "warn"))),
		Polling:    loadPolling(fc),
	}
}
