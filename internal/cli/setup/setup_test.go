package setup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/config"
)

func runSetup(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := SetupCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), err
}

func TestSetupConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "dealdesk", "config.yaml")

	out, err := runSetup(t, "config", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "No config file")

	out, err = runSetup(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "with 4 stages")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "closed-won")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Stages(), 4)

	out, err = runSetup(t, "config", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file at "+path)
}

func TestSetupConfig_Exists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	_, err := runSetup(t, "config")
	require.NoError(t, err)

	_, err = runSetup(t, "config")
	require.ErrorIs(t, err, ErrConfigExists)

	_, err = runSetup(t, "config", "--force")
	assert.NoError(t, err)
}
