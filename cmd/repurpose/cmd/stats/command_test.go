package stats_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/cmd/repurpose/cmd/stats"
	"github.com/agentstation/repurpose/internal/embedded"
	"github.com/agentstation/repurpose/pkg/dataset"
)

func run(t *testing.T, format string) string {
	t.Helper()
	app := &application.Mock{
		DatasetFunc: func(ctx context.Context) (*dataset.Dataset, error) {
			return dataset.Load(ctx, embedded.Sample())
		},
		OutputFormatFunc: func() string { return format },
	}
	cmd := stats.NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestStatsTable(t *testing.T) {
	out := run(t, "table")
	assert.Contains(t, out, "2.0.0-sample")
	assert.Contains(t, out, "Positives per drug")
}

func TestStatsJSON(t *testing.T) {
	var s dataset.Stats
	require.NoError(t, json.Unmarshal([]byte(run(t, "json")), &s))
	assert.Equal(t, 3, s.Drugs)
	assert.Equal(t, 2, s.Diseases)
	assert.Equal(t, 4, s.Genes)
	assert.Equal(t, 3, s.Positives)
	assert.Equal(t, 1, s.Negatives)
}
