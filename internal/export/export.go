// Package export writes a loaded release to formats other tools consume.
package export

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/repurpose/pkg/logging"
)

// Option configures an export.
type Option func(*options)

type options struct {
	features bool
	unknowns bool
	logger   *zerolog.Logger
}

// newOptions applies opts and tags the logger with the export format.
// The logger defaults to the one carried by ctx.
func newOptions(ctx context.Context, format string, opts []Option) (context.Context, *options) {
	o := &options{logger: logging.FromContext(ctx)}
	for _, opt := range opts {
		opt(o)
	}
	ctx = logging.WithOperation(logging.WithLogger(ctx, o.logger), "export")
	ctx = logging.WithField(ctx, "format", format)
	o.logger = logging.FromContext(ctx)
	return ctx, o
}

// WithFeatures includes the gene feature matrices.
func WithFeatures(enabled bool) Option {
	return func(o *options) { o.features = enabled }
}

// WithUnknowns includes unlabeled (0) drug-disease pairs.
func WithUnknowns(enabled bool) Option {
	return func(o *options) { o.unknowns = enabled }
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Summary describes what an export wrote.
type Summary struct {
	Path          string `json:"path" yaml:"path"`
	Format        string `json:"format" yaml:"format"`
	Drugs         int    `json:"drugs" yaml:"drugs"`
	Diseases      int    `json:"diseases" yaml:"diseases"`
	Genes         int    `json:"genes" yaml:"genes"`
	Associations  int    `json:"associations" yaml:"associations"`
	FeatureValues int    `json:"feature_values,omitempty" yaml:"feature_values,omitempty"`
}
