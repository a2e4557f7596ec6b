package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/qitrack/internal/app"
	"github.com/thenoetrevino/qitrack/internal/config"
	"github.com/thenoetrevino/qitrack/internal/storage"
)

type contextKey string

const (
	appKey     contextKey = "app"
	optionsKey contextKey = "options"
)

// Options selects the data the CLI opens. The root command resolves them
// from config, environment and flags.
type Options struct {
	DataDir string
	Backend string
	Logger  *slog.Logger
	Colors  config.ColorScheme
}

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Colors config.ColorScheme

	// owned is false when the App was injected and belongs to the caller
	owned bool
}

// WithApp returns a context carrying an already opened App.
// GetCLIFromContext uses it instead of opening storage.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// WithOptions returns a context carrying the resolved storage options
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey, opts)
}

// NewCLI opens storage and loads both collections
func NewCLI(ctx context.Context, opts Options) (*CLI, error) {
	backend, err := storage.ParseBackend(opts.Backend)
	if err != nil {
		return nil, err
	}

	var appOpts []app.Option
	if opts.Logger != nil {
		appOpts = append(appOpts, app.WithLogger(opts.Logger))
	}

	application, err := app.Open(ctx, backend, opts.DataDir, appOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	colors := opts.Colors
	colors.ApplyDefaults()

	return &CLI{App: application, Colors: colors, owned: true}, nil
}

// GetCLIFromContext returns the CLI for a command. An App injected with
// WithApp wins; otherwise storage is opened from the context's Options,
// falling back to the config file.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts, hasOpts := ctx.Value(optionsKey).(Options)

	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		colors := opts.Colors
		colors.ApplyDefaults()
		return &CLI{App: a, Colors: colors}, nil
	}

	if !hasOpts {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		opts = Options{DataDir: cfg.DataDir, Backend: cfg.Backend, Colors: cfg.ColorScheme}
	}

	return NewCLI(ctx, opts)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	return c.App.Close()
}
