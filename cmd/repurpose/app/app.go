// Package app provides the application context and dependency management
// for the repurpose CLI. It centralizes configuration, logging and the
// lazily loaded dataset release.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/embedded"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
	"github.com/agentstation/repurpose/pkg/logging"
)

// App represents the repurpose application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	flags  Flags

	logger *zerolog.Logger

	// Dataset (lazy-initialized, singleton)
	mu      sync.RWMutex
	dataset *dataset.Dataset
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// DataDir returns the release directory, or "" when the embedded sample is used.
func (a *App) DataDir() string {
	if a.config.UseSample {
		return ""
	}
	return a.config.DataDir
}

// Dataset returns the release, loading it lazily on first use.
// This is thread-safe and ensures the release is only loaded once.
func (a *App) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	a.mu.RLock()
	if a.dataset != nil {
		ds := a.dataset
		a.mu.RUnlock()
		return ds, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.dataset != nil {
		return a.dataset, nil
	}

	ds, err := a.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	a.dataset = ds
	return ds, nil
}

// LoadDataset loads the configured release without touching the cache.
func (a *App) LoadDataset(ctx context.Context, opts ...dataset.Option) (*dataset.Dataset, error) {
	base, err := a.datasetOptions()
	if err != nil {
		return nil, err
	}
	opts = append(base, opts...)
	ctx = logging.WithLogger(ctx, a.logger)

	if a.config.UseSample {
		return dataset.Load(ctx, embedded.Sample(), append([]dataset.Option{dataset.WithSource(embedded.SampleSource)}, opts...)...)
	}
	return dataset.LoadDir(ctx, a.config.DataDir, opts...)
}

// datasetOptions builds load options from the configuration.
func (a *App) datasetOptions() ([]dataset.Option, error) {
	opts := []dataset.Option{dataset.WithLogger(a.logger)}

	if a.config.RatingsFile != "" || a.config.ItemsFile != "" || a.config.UsersFile != "" {
		opts = append(opts, dataset.WithFiles(a.config.RatingsFile, a.config.ItemsFile, a.config.UsersFile))
	}
	if a.config.Manifest != "" {
		m, err := ReadManifest(a.config.Manifest)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dataset.WithManifest(m))
	}
	return opts, nil
}

// ReadManifest reads and parses a manifest file from disk.
func ReadManifest(path string) (*dataset.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("manifest", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return dataset.ParseManifest(data, path)
}

// Shutdown releases application resources. The dataset is dropped so a
// later command reloads it.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.dataset = nil
	a.mu.Unlock()

	a.logger.Debug().Msg("Shutdown complete")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithDataset sets a preloaded release (useful for testing).
func WithDataset(ds *dataset.Dataset) Option {
	return func(a *App) error {
		a.dataset = ds
		return nil
	}
}
