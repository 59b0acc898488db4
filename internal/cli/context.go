package cli

import (
	"context"

	"github.com/thenoetrevino/dealdesk/internal/app"
	"github.com/thenoetrevino/dealdesk/internal/cli/styles"
	"github.com/thenoetrevino/dealdesk/internal/config"
)

type contextKey struct{}

// WithCLI returns a context carrying c for commands to use
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// WithApp returns a context carrying an existing App. Commands run against it
// with the default configuration and never close it.
func WithApp(ctx context.Context, a *app.App) context.Context {
	cfg := config.Default()
	styles.Init(cfg.ColorScheme)
	return WithCLI(ctx, &CLI{App: a, Config: cfg})
}

// GetCLIFromContext returns the CLI stored in ctx, or initializes a new one
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if c, ok := ctx.Value(contextKey{}).(*CLI); ok && c != nil {
		return c, nil
	}
	return NewCLI(ctx)
}
