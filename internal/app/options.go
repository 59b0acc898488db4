package app

import (
	"log/slog"

	"github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient  events.EventPublisher
	logger       *slog.Logger
	boardOptions []board.Option
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithBoardOptions passes options through to the board engine, e.g. a fixed
// id generator in tests
func WithBoardOptions(opts ...board.Option) Option {
	return func(cfg *appConfig) {
		cfg.boardOptions = append(cfg.boardOptions, opts...)
	}
}
