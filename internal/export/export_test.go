package export_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/repurpose/internal/embedded"
	"github.com/agentstation/repurpose/internal/export"
	"github.com/agentstation/repurpose/pkg/dataset"
	"github.com/agentstation/repurpose/pkg/errors"
	"github.com/agentstation/repurpose/pkg/logging"
)

func sample(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(context.Background(), embedded.Sample())
	require.NoError(t, err)
	return ds
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestSQLite(t *testing.T) {
	ds := sample(t)
	path := filepath.Join(t.TempDir(), "release.db")

	summary, err := export.SQLite(context.Background(), ds, path)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Drugs)
	assert.Equal(t, 2, summary.Diseases)
	assert.Equal(t, 4, summary.Genes)
	assert.Equal(t, 4, summary.Associations)
	assert.Zero(t, summary.FeatureValues)

	db, err := export.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 3, count(t, db, "SELECT COUNT(*) FROM drugs"))
	assert.Equal(t, 3, count(t, db, "SELECT COUNT(*) FROM associations WHERE value = 1"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM associations WHERE value = -1"))

	var version string
	require.NoError(t, db.QueryRow("SELECT value FROM meta WHERE key = 'version'").Scan(&version))
	assert.Equal(t, "2.0.0-sample", version)

	// Drug identifiers stay text even when numeric.
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM drugs WHERE id = '12345' AND typeof(id) = 'text'"))

	_, err = db.Exec("SELECT 1 FROM drug_features")
	assert.Error(t, err, "feature tables are opt-in")
}

func TestSQLiteWithFeaturesAndUnknowns(t *testing.T) {
	ds := sample(t)
	path := filepath.Join(t.TempDir(), "release.db")

	// An existing file is replaced.
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0o644))

	summary, err := export.SQLite(context.Background(), ds, path,
		export.WithFeatures(true), export.WithUnknowns(true))
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Associations)
	assert.Equal(t, 4*3+4*2, summary.FeatureValues)

	db, err := export.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 12, count(t, db, "SELECT COUNT(*) FROM drug_features"))
	assert.Equal(t, 8, count(t, db, "SELECT COUNT(*) FROM disease_features"))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM associations WHERE value = 0"))
}

func TestSQLiteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := export.SQLite(ctx, sample(t), filepath.Join(t.TempDir(), "release.db"))
	require.Error(t, err)
}

func TestTriplets(t *testing.T) {
	ds := sample(t)
	path := filepath.Join(t.TempDir(), "triplets.csv")

	summary, err := export.Triplets(context.Background(), ds, path)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Associations)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "drug,disease,value", lines[0])
	for _, line := range lines[1:] {
		assert.False(t, strings.HasSuffix(line, ",0"), "unknown pairs are skipped by default: %s", line)
	}

	summary, err = export.Triplets(context.Background(), ds, path, export.WithUnknowns(true))
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Associations)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestExportTagsLogs(t *testing.T) {
	ds := sample(t)
	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	_, err := export.Triplets(ctx, ds, filepath.Join(t.TempDir(), "triplets.csv"))
	require.NoError(t, err)
	logger.AssertContains(t, `"operation":"export"`)
	logger.AssertContains(t, `"format":"triplets"`)
}

func TestWriteTripletsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	_, err := export.WriteTriplets(ctx, &b, sample(t).Triplets(true))
	assert.True(t, errors.IsCanceled(err))
}

func TestTripletsMissingDirectory(t *testing.T) {
	_, err := export.Triplets(context.Background(), sample(t), filepath.Join(t.TempDir(), "absent", "t.csv"))
	require.Error(t, err)
}
