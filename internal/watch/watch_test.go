package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agentstation/repurpose/internal/watch"
	"github.com/agentstation/repurpose/pkg/logging"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) fn(_ context.Context, changed []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, changed)
	return nil
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.calls...)
}

func start(t *testing.T, dir string, rec *recorder) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- watch.Run(ctx, dir, []string{"ratings_mat.csv", "items.csv"}, rec.fn,
			watch.WithDebounce(150*time.Millisecond),
			watch.WithLogger(logging.NewNopLogger()))
	}()
	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	return cancel, errc
}

func TestRunDebouncesWatchedFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	rec := &recorder{}
	cancel, done := start(t, dir, rec)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings_mat.csv"), []byte{byte('a' + i)}, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.csv"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"ratings_mat.csv", "items.csv"}, rec.snapshot()[0])

	cancel()
	require.NoError(t, <-done)
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	rec := &recorder{}
	cancel, done := start(t, dir, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(400 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	cancel()
	require.NoError(t, <-done)
}

func TestRunMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	err := watch.Run(context.Background(), filepath.Join(t.TempDir(), "absent"), nil,
		func(context.Context, []string) error { return nil })
	assert.Error(t, err)
}
