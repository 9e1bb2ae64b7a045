package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/inventory/internal/engine"
)

const feedHeader = "product_name,product_price,product_quantity,date_updated\n"

// testEnv is a scratch directory holding a database, feed and backup.
type testEnv struct {
	dir    string
	db     string
	feed   string
	backup string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		dir:    dir,
		db:     filepath.Join(dir, "Inventory.db"),
		feed:   filepath.Join(dir, "inventory.csv"),
		backup: filepath.Join(dir, "Inventory_backup.csv"),
	}
}

func (e *testEnv) writeFeed(t *testing.T, rows ...string) {
	t.Helper()
	content := feedHeader + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(e.feed, []byte(content), 0o644))
}

// args prefixes the environment's paths to the given command line.
func (e *testEnv) args(extra ...string) []string {
	base := []string{"--db", e.db, "--feed", e.feed, "--backup", e.backup}
	return append(base, extra...)
}

// testOptions returns options with deterministic engine collaborators and
// an interrupt channel that never fires.
func testOptions() *RootOptions {
	return &RootOptions{
		RunIDGenerator: engine.NewFixedGenerator("run-1", "run-2", "run-3"),
		Interrupts:     make(chan os.Signal),
	}
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, opts *RootOptions, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand(opts)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
