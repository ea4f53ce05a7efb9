package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	DatasetFunc      func(context.Context) (*dataset.Dataset, error)
	LoadDatasetFunc  func(context.Context, ...dataset.Option) (*dataset.Dataset, error)
	DataDirFunc      func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	NoColorFunc      func() bool
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

var _ Application = (*Mock)(nil)

// Dataset returns a dataset using the mock function or a not found error.
func (m *Mock) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	if m.DatasetFunc != nil {
		return m.DatasetFunc(ctx)
	}
	return nil, errors.NewNotFoundError("dataset", "mock")
}

// LoadDataset uses the mock function, falling back to Dataset.
func (m *Mock) LoadDataset(ctx context.Context, opts ...dataset.Option) (*dataset.Dataset, error) {
	if m.LoadDatasetFunc != nil {
		return m.LoadDatasetFunc(ctx, opts...)
	}
	return m.Dataset(ctx)
}

// DataDir returns the directory using the mock function or "".
func (m *Mock) DataDir() string {
	if m.DataDirFunc != nil {
		return m.DataDirFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor uses the mock function or returns true.
func (m *Mock) NoColor() bool {
	if m.NoColorFunc != nil {
		return m.NoColorFunc()
	}
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
