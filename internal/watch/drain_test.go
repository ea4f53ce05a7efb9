package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrain(t *testing.T) {
	pending := map[string]struct{}{"users.csv": {}, "items.csv": {}}

	assert.Equal(t, []string{"items.csv", "users.csv"}, drain(pending))
	assert.Empty(t, pending)

	// A late timer signal after the set was flushed has nothing to report.
	assert.Nil(t, drain(pending))
}
