package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/thenoetrevino/dealdesk/internal/app"
	"github.com/thenoetrevino/dealdesk/internal/cli/styles"
	"github.com/thenoetrevino/dealdesk/internal/config"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/events"
	"github.com/thenoetrevino/dealdesk/internal/logging"
)

// eventQueueSize bounds the in-process event bus
const eventQueueSize = 64

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	db        *sql.DB
	logCloser io.Closer

	// owned is false when the CLI wraps an App supplied by the caller
	owned bool
}

// NewCLI loads configuration, opens the database and starts the services
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Init(cfg.LogPath, cfg.SlogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.DatabasePath)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	application, err := app.New(ctx, database.NewRepository(db), cfg.Stages(),
		app.WithEventPublisher(events.NewBus(eventQueueSize)),
		app.WithLogger(logging.Logger),
	)
	if err != nil {
		_ = db.Close()
		_ = logCloser.Close()
		return nil, err
	}

	styles.Init(cfg.ColorScheme)

	return &CLI{
		App:       application,
		Config:    cfg,
		db:        db,
		logCloser: logCloser,
		owned:     true,
	}, nil
}

// Currency returns the configured currency symbol
func (c *CLI) Currency() string {
	return c.Config.Currency
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return errors.Join(c.App.Close(), c.db.Close(), c.logCloser.Close())
}
