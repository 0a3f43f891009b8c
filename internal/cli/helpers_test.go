package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chatstore/internal/store"
)

// tempDB returns a database path under t.TempDir(). The file does not exist yet.
func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "chat.db")
}

// seedUsers writes records straight to the database at path.
func seedUsers(t *testing.T, path string, recs ...store.UserRecord) {
	t.Helper()
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()
	for _, rec := range recs {
		require.NoError(t, st.WriteUser(context.Background(), rec))
	}
}

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeRoot runs the full command tree and fails the test on error.
func executeRoot(t *testing.T, args ...string) (string, string) {
	t.Helper()
	stdout, stderr, err := execute(t, NewRootCommand(), args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return stdout, stderr
}

func seededUser(id, name string) store.UserRecord {
	return store.UserRecord{ID: id, TimeMs: 1700000000000, Name: name}
}
