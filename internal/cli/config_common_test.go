package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgcsv/internal/config"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

func TestLoadProjectConfig_MissingDefaultIsEmpty(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadProjectConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.ConnectionString)
}

func TestLoadProjectConfig_MissingExplicitIsError(t *testing.T) {
	_, err := loadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, pgcsv.ErrInvalidConfig)
}

func TestLoadProjectConfig_LoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PGCSV_TEST_DOTENV=loaded\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("PGCSV_TEST_DOTENV", "")
	os.Unsetenv("PGCSV_TEST_DOTENV")

	_, err := loadProjectConfig("")
	require.NoError(t, err)
	assert.Equal(t, "loaded", os.Getenv("PGCSV_TEST_DOTENV"))
}

func newOptionCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Duration("timeout", 0, "")
	cmd.Flags().Int("connect-retries", 3, "")
	cmd.Flags().String("table", "voos", "")
	cmd.Flags().Int("batch-size", 10000, "")
	cmd.Flags().Bool("strict-rows", false, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestResolveEffectiveTimeout(t *testing.T) {
	fileCfg := &config.ProjectConfig{Timeout: "90s"}

	got, err := resolveEffectiveTimeout(newOptionCmd(t), fileCfg, 0)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, got)

	got, err = resolveEffectiveTimeout(newOptionCmd(t, "--timeout", "5s"), fileCfg, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, got)

	_, err = resolveEffectiveTimeout(newOptionCmd(t), &config.ProjectConfig{Timeout: "soon"}, 0)
	assert.ErrorIs(t, err, pgcsv.ErrInvalidConfig)

	got, err = resolveEffectiveTimeout(newOptionCmd(t), nil, 0)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestResolveConnectRetries(t *testing.T) {
	seven := 7
	fileCfg := &config.ProjectConfig{ConnectRetries: &seven}

	assert.Equal(t, 7, resolveConnectRetries(newOptionCmd(t), fileCfg, 3))
	assert.Equal(t, 1, resolveConnectRetries(newOptionCmd(t, "--connect-retries", "1"), fileCfg, 1))
	assert.Equal(t, 3, resolveConnectRetries(newOptionCmd(t), &config.ProjectConfig{}, 3))
}

func TestOptionHelpers(t *testing.T) {
	unset := newOptionCmd(t)
	set := newOptionCmd(t, "--table", "cli.voos", "--batch-size", "5", "--strict-rows=false")
	yes := true

	assert.Equal(t, "file.voos", stringOption(unset, "table", "voos", "file.voos"))
	assert.Equal(t, "voos", stringOption(unset, "table", "voos", ""))
	assert.Equal(t, "cli.voos", stringOption(set, "table", "cli.voos", "file.voos"))

	assert.Equal(t, 250, intOption(unset, "batch-size", 10000, 250))
	assert.Equal(t, 5, intOption(set, "batch-size", 5, 250))

	assert.True(t, boolOption(unset, "strict-rows", false, &yes))
	assert.False(t, boolOption(unset, "strict-rows", false, nil))
	assert.False(t, boolOption(set, "strict-rows", false, &yes))
}
