package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentstation/repurpose/pkg/logging"
)

func executeRoot(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExecute_SampleStats(t *testing.T) {
	app := newSampleApp(t)
	out, err := executeRoot(t, app, "stats", "-o", "json", "--log-level", "error")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, `"drugs": 3`) {
		t.Errorf("unexpected stats output:\n%s", out)
	}
}

func TestExecute_DataDirFlag(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"ratings_mat.csv": ",C1\nD1,1\n",
		"items.csv":       ",D1\nG1,0.5\n",
		"users.csv":       ",C1\nG1,0.1\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	app := newSampleApp(t)
	out, err := executeRoot(t, app, "validate", "--data-dir", dir, "--skip-counts", "-o", "table")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if app.DataDir() != dir {
		t.Errorf("DataDir() = %s, want %s", app.DataDir(), dir)
	}
	if !strings.Contains(out, "6 checks passed") {
		t.Errorf("unexpected validate output:\n%s", out)
	}
}

func TestExecute_FormatIsCaseInsensitive(t *testing.T) {
	app := newSampleApp(t)
	out, err := executeRoot(t, app, "stats", "-o", "JSON", "--log-level", "error")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if got := app.OutputFormat(); got != "json" {
		t.Errorf("OutputFormat() = %q, want json", got)
	}
	if !strings.Contains(out, `"drugs": 3`) {
		t.Errorf("expected JSON output, got:\n%s", out)
	}
}

func TestExecute_InvalidFormat(t *testing.T) {
	app := newSampleApp(t)
	if _, err := executeRoot(t, app, "stats", "-o", "xml"); err == nil {
		t.Error("expected an error for -o xml")
	}
}

func TestExecute_SampleAndDataDirConflict(t *testing.T) {
	app := newSampleApp(t)
	if _, err := executeRoot(t, app, "stats", "--sample", "--data-dir", "."); err == nil {
		t.Error("expected --sample and --data-dir to conflict")
	}
}

func TestExecute_Commands(t *testing.T) {
	app, err := New("dev", "", "", "", WithConfig(sampleConfig()), WithLogger(logging.NewNopLogger()))
	if err != nil {
		t.Fatal(err)
	}
	root := app.createRootCommand()
	for _, name := range []string{"validate", "stats", "list", "show", "evaluate", "export", "version", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered", name)
		}
	}
}
