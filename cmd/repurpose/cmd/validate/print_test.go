package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/internal/cmd/emoji"
	"github.com/agentstation/repurpose/pkg/dataset"
)

func failingReport() *dataset.Report {
	return &dataset.Report{
		Dataset: "TRANSCRIPT",
		Version: "2.0.0",
		Checks: []dataset.Check{
			{Name: "drug-closure", Severity: dataset.SeverityError, Passed: true},
			{Name: "declared-counts", Severity: dataset.SeverityError, Total: 1, Issues: []string{"drugs: 3 != 204"}},
			{Name: "missing-values", Severity: dataset.SeverityWarning, Total: 2},
		},
	}
}

func TestVerdict(t *testing.T) {
	a := verdict(failingReport())
	assert.Equal(t, emoji.Error+" 1 of 3 checks failed", a.String())
	assert.Equal(t, []string{"declared-counts"}, a.Details)

	passing := &dataset.Report{Checks: []dataset.Check{{Name: "drug-closure", Severity: dataset.SeverityError, Passed: true}}}
	assert.Equal(t, emoji.Success+" 1 checks passed", verdict(passing).String())
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, "table", true)
	require.NoError(t, p.report(failingReport()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Release 2.0.0 (TRANSCRIPT)\n"))
	assert.Contains(t, out, "1 of 3 checks failed\n   declared-counts\n")
}

func TestPrinterJSONNotices(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, "json", true)
	require.NoError(t, p.loadError(errors.New("items.csv: no such file")))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "items.csv: no such file", got["error"])

	buf.Reset()
	require.NoError(t, p.changed([]string{"users.csv", "items.csv"}))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []any{"items.csv", "users.csv"}, got["details"])
}
