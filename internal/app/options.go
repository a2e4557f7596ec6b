package app

import (
	"log/slog"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger *slog.Logger
	clock  func() models.Date
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock fixes "today" for default dates
func WithClock(today func() models.Date) Option {
	return func(cfg *appConfig) {
		cfg.clock = today
	}
}
