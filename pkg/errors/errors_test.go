package errors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/repurpose/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "drug",
			ID:       "DB00001",
		}
		assert.Equal(t, "drug with ID DB00001 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("disease", "C0002395")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("association-values", 2, "value outside {-1,0,1}")
		assert.Equal(t, "validation failed for association-values: value outside {-1,0,1}", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty dataset"}
		assert.Equal(t, "validation failed: empty dataset", err.Error())
	})
}

func TestMismatchError(t *testing.T) {
	err := &pkgerrors.MismatchError{
		Left:      "ratings_mat.csv rows",
		Right:     "items.csv columns",
		OnlyLeft:  []string{"DB00001"},
		OnlyRight: []string{"DB00002", "DB00003"},
	}
	assert.Contains(t, err.Error(), "1 only in the former")
	assert.Contains(t, err.Error(), "2 only in the latter")
	assert.True(t, pkgerrors.IsMismatch(err))
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestParseError(t *testing.T) {
	t.Run("with position", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "items.csv",
			Line:    3,
			Column:  2,
			Message: "invalid number",
		}
		assert.Equal(t, "parse error in csv at items.csv:3:2: invalid number", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := pkgerrors.WrapParse("yaml", "manifest.yaml", cause)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "manifest.yaml")
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapParse("csv", "x", nil))
	})
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := pkgerrors.WrapIO("open", "/data/items.csv", cause)
	assert.Equal(t, "IO error during open of /data/items.csv: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NoError(t, pkgerrors.WrapIO("open", "x", nil))
}

func TestResourceError(t *testing.T) {
	cause := pkgerrors.NewNotFoundError("file", "users.csv")
	err := pkgerrors.WrapResource("load", "dataset", "2.0.0", cause)
	assert.Equal(t, "failed to load dataset 2.0.0: file with ID users.csv not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad value")
	err := pkgerrors.NewConfigError("output", "unknown format", cause)
	assert.Equal(t, "configuration error in output: unknown format", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapCanceled(t *testing.T) {
	err := pkgerrors.WrapCanceled("load dataset", context.Canceled)
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, pkgerrors.WrapCanceled("noop", nil))
}
