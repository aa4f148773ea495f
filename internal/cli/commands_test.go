package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func TestImportCmd_ArgsValidation_TooMany(t *testing.T) {
	err := importCmd.Args(importCmd, []string{"a.csv", "b.csv"})
	require.Error(t, err)
	assert.Equal(t, pgcsv.ExitUsageError, pgcsv.ExitCodeForError(err))
}

func TestProbeCmd_RejectsArguments(t *testing.T) {
	err := probeCmd.Args(probeCmd, []string{"extra"})
	require.Error(t, err)
	assert.Equal(t, pgcsv.ExitUsageError, pgcsv.ExitCodeForError(err))
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"import", "probe", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestConnectionFlags_HostShorthand(t *testing.T) {
	for _, cmd := range []string{"import", "probe"} {
		c, _, err := rootCmd.Find([]string{cmd})
		require.NoError(t, err)
		f := c.Flags().ShorthandLookup("h")
		require.NotNil(t, f, "%s: -h not registered", cmd)
		assert.Equal(t, "host", f.Name)
	}
}

func TestImportCmd_MissingSourceFileIsIOError(t *testing.T) {
	clearConnectionEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PGCSV_NON_INTERACTIVE", "1")

	// The source is opened before any connection attempt, so no server is needed.
	missing := filepath.Join(t.TempDir(), "missing.csv")
	rootCmd.SetArgs([]string{"import", missing, "--connection", "postgresql://postgres@127.0.0.1:1/postgres", "--no-progress"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, pgcsv.ErrIO)
	assert.Equal(t, pgcsv.ExitIOError, pgcsv.ExitCodeForError(err))
}
