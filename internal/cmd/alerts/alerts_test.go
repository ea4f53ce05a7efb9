package alerts_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/internal/cmd/alerts"
	"github.com/agentstation/repurpose/internal/cmd/emoji"
	"github.com/agentstation/repurpose/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	a := alerts.NewError("cannot load release").WithError(errors.New("users.csv not found"))
	assert.Equal(t, emoji.Error+" cannot load release: users.csv not found", a.String())
	assert.Equal(t, emoji.Success+" done", alerts.NewSuccess("done").String())
}

func TestWriterTable(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewWriter(&buf, output.FormatTable, false)
	require.NoError(t, w.Write(alerts.NewWarning("1 check failed").WithDetails("missing-values")))

	// A buffer is not a terminal, so no color codes.
	assert.Equal(t, emoji.Warning+" 1 check failed\n   missing-values\n", buf.String())
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := alerts.NewWriter(&buf, output.FormatJSON, true)
	require.NoError(t, w.Write(alerts.NewInfo("changed").WithDetails("items.csv")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "info", got["level"])
	assert.Equal(t, "changed", got["message"])
	assert.NotContains(t, got, "error")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", alerts.LevelWarning.String())
	assert.Equal(t, "unknown(9)", alerts.Level(9).String())
}
