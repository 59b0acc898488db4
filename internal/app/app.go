package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/events"
	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	logger *slog.Logger

	// Service layer (business logic)
	DealService dealservice.Service
}

// New creates a new App over repo with the given pipeline stages.
// This is the single entry point for creating the application container.
func New(ctx context.Context, repo database.DataStore, stages []models.Stage, opts ...Option) (*App, error) {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	svc, err := dealservice.NewService(ctx, repo, stages, cfg.eventClient, cfg.boardOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to start deal service: %w", err)
	}

	cfg.logger.Debug("app initialized", "stages", len(stages), "events", cfg.eventClient != nil)

	return &App{
		repo:        repo,
		eventClient: cfg.eventClient,
		logger:      cfg.logger,
		DealService: svc,
	}, nil
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Subscribe returns a live event feed when the publisher delivers in-process.
// ok is false when events are disabled or go elsewhere.
func (a *App) Subscribe(buffer int) (feed <-chan events.Event, cancel func(), ok bool) {
	sub, isSub := a.eventClient.(events.Subscriber)
	if !isSub {
		return nil, func() {}, false
	}
	feed, cancel = sub.Subscribe(buffer)
	return feed, cancel, true
}

// Close stops event delivery. The repository is owned by the caller.
func (a *App) Close() error {
	if a.eventClient == nil {
		return nil
	}
	if err := a.eventClient.Close(); err != nil {
		a.logger.Error("failed to close event publisher", "error", err)
		return err
	}
	return nil
}
