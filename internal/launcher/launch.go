package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/dealdesk/internal/cli"
	"github.com/thenoetrevino/dealdesk/internal/tui"
)

// Launch starts the board TUI over the configured database
func Launch(parent context.Context) error {
	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("error closing resources", "error", err)
		}
	}()

	model := tui.InitialModel(ctx, cliInstance.App, cliInstance.Config)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if ctx.Err() != nil {
		slog.Info("shutdown signal received, cleaning up")
	}
	return nil
}
