package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/relay-cli/internal/adapters/driving/watch"
)

func TestWatchCmd(t *testing.T) {
	assert.Equal(t, "watch [dir]", watchCmd.Use)
	assert.NotNil(t, watchCmd.Flags().Lookup("skip-existing"))
	settle := watchCmd.Flags().Lookup("settle")
	require.NotNil(t, settle)
	assert.Equal(t, watch.DefaultSettle.String(), settle.DefValue)
}

func TestWatchCmd_MissingDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("watch", filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading inbox")
}

func TestWatchCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := clearServices()
	defer cleanup()

	_, err := execute("watch", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestRunWatch_ImportsExistingThenStops(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "people.txt"), []byte(peopleSearchPaste), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noise.txt"), []byte("Next\nPrevious\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.md"), []byte(peopleSearchPaste), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	require.NoError(t, runWatch(cmd, []string{dir}))

	out := buf.String()
	assert.Contains(t, out, "noise.txt: no known layout matched")
	assert.Contains(t, out, "people.txt: 1 found, 1 inserted, 0 skipped")
	assert.NotContains(t, out, "skip.md")
	assert.Contains(t, out, "Watching "+dir)
}

func TestPrintWatchReport_Error(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	printWatchReport(cmd, watch.Report{Path: "/inbox/big.txt", Err: errors.New("too large")})

	assert.Contains(t, buf.String(), "big.txt: too large")
}
