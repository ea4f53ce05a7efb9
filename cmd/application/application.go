// Package application provides the application interface for repurpose commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            ds, err := app.Dataset(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use ds
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    DatasetFunc: func(context.Context) (*dataset.Dataset, error) {
//	        return testDataset, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/repurpose/pkg/dataset"
)

// Application provides the application interface that commands need.
// The App struct from cmd/repurpose/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Dataset returns the configured release, loading it on first use.
	// Later calls return the same instance.
	Dataset(ctx context.Context) (*dataset.Dataset, error)

	// LoadDataset loads the configured release again, bypassing the cache.
	// Extra options are applied after the configured ones.
	LoadDataset(ctx context.Context, opts ...dataset.Option) (*dataset.Dataset, error)

	// DataDir returns the release directory, or "" for the embedded sample.
	DataDir() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
