package list

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/cmd/application"
	"github.com/agentstation/repurpose/internal/embedded"
	"github.com/agentstation/repurpose/pkg/dataset"
)

func execute(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	app := &application.Mock{
		DatasetFunc: func(ctx context.Context) (*dataset.Dataset, error) {
			return dataset.Load(ctx, embedded.Sample())
		},
		OutputFormatFunc: func() string { return format },
	}
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListDrugs(t *testing.T) {
	out, err := execute(t, "json", "drugs")
	require.NoError(t, err)

	var drugs []dataset.Entity
	require.NoError(t, json.Unmarshal([]byte(out), &drugs))
	require.Len(t, drugs, 3)
	assert.Equal(t, dataset.Entity{ID: "DB00001", Positives: 1, Unknowns: 1, HasFeatures: true}, drugs[0])
	assert.Equal(t, "12345", drugs[2].ID)
}

func TestListDiseasesSorted(t *testing.T) {
	out, err := execute(t, "json", "diseases", "--sort", "positives", "--limit", "1")
	require.NoError(t, err)

	var diseases []dataset.Entity
	require.NoError(t, json.Unmarshal([]byte(out), &diseases))
	require.Len(t, diseases, 1)
	assert.Equal(t, "C0002395", diseases[0].ID)
	assert.Equal(t, 2, diseases[0].Positives)
}

func TestListGenesTable(t *testing.T) {
	out, err := execute(t, "table", "genes")
	require.NoError(t, err)
	for _, g := range []string{"TP53", "EGFR", "BRCA1", "MYC"} {
		assert.Contains(t, out, g)
	}
}

func TestListUnknownResource(t *testing.T) {
	_, err := execute(t, "table", "targets")
	assert.Error(t, err)
}

func TestArrange(t *testing.T) {
	entities := []dataset.Entity{{ID: "b", Positives: 1}, {ID: "a", Positives: 3}, {ID: "c", Positives: 1}}

	byID, err := arrange(append([]dataset.Entity(nil), entities...), &Options{Sort: "id"})
	require.NoError(t, err)
	assert.Equal(t, "a", byID[0].ID)

	byPositives, err := arrange(append([]dataset.Entity(nil), entities...), &Options{Sort: "positives", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{byPositives[0].ID, byPositives[1].ID})

	_, err = arrange(entities, &Options{Sort: "name"})
	assert.Error(t, err)
}
