package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/hvacgrid/internal/component"
	"github.com/vk/hvacgrid/internal/config"
	"github.com/vk/hvacgrid/internal/ctxlog"
	"github.com/vk/hvacgrid/internal/editor"
	"github.com/vk/hvacgrid/internal/form"
	"github.com/vk/hvacgrid/internal/registry"
)

// Prompter runs an edit session interactively.
type Prompter interface {
	Edit(ctx context.Context, s *editor.Session) (form.Outcome, error)
	IsInteractive() bool
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry
	factory  *component.Factory
	prompter Prompter
}

// Option customizes an App built by NewApp.
type Option func(*App)

// WithLogWriter sends log records to w instead of the output writer.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logger = newLogger(a.config.LogLevel, a.config.LogFormat, w) }
}

// WithPrompter replaces the terminal form used by interactive mode.
func WithPrompter(p Prompter) Option {
	return func(a *App) { a.prompter = p }
}

// WithFactory replaces the built-in component factory.
func WithFactory(f *component.Factory) Option {
	return func(a *App) { a.factory = f }
}

// WithRegistry replaces the built-in property schema registry.
func WithRegistry(r *registry.Registry) Option {
	return func(a *App) { a.registry = r }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, registry and
// component factory. A registry that does not match the factory is a
// programming error and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:     outW,
		logger:   newLogger(appConfig.LogLevel, appConfig.LogFormat, outW),
		config:   appConfig,
		loader:   loader,
		registry: registry.Default(),
		factory:  component.DefaultFactory(),
		prompter: form.NewPrompter(),
	}
	for _, opt := range opts {
		opt(a)
	}
	ctx := ctxlog.WithLogger(context.Background(), a.logger)
	a.logger.Debug("Logger configured successfully.")

	if err := a.registry.Validate(ctx, a.factory); err != nil {
		panic(err)
	}
	a.logger.Debug("Registry validation passed.", "types", a.registry.TypeNames())

	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
