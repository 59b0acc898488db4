package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// writeConfig points XDG_CONFIG_HOME at a temp dir holding content
func writeConfig(t *testing.T, content string) {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "dealdesk")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.MoveDealRight != "L" {
		t.Errorf("Default MoveDealRight key = %s, want L", defaults.MoveDealRight)
	}
	if defaults.DeleteDeal != "x" {
		t.Errorf("Default DeleteDeal key = %s, want x", defaults.DeleteDeal)
	}
	if defaults.AddDeal != "a" || defaults.EditDeal != "e" {
		t.Errorf("Default form keys = %s/%s, want a/e", defaults.AddDeal, defaults.EditDeal)
	}
	if defaults.SaveForm != "ctrl+s" {
		t.Errorf("Default SaveForm key = %s, want ctrl+s", defaults.SaveForm)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
	require.Len(t, cfg.Pipeline, 4)
	assert.Equal(t, "New Leads", cfg.Pipeline[0].Label)
	assert.Equal(t, "Closed Won", cfg.Pipeline[3].Label)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadConfigWithFile(t *testing.T) {
	writeConfig(t, `database_path: /tmp/deals.db
log_level: debug
currency: "€"
pipeline:
  - id: prospect
    label: Prospect
    accent: "#FF0000"
  - id: signed
key_mappings:
  quit: "Q"
theme:
  preset: monochrome
  accent: "#123456"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/deals.db", cfg.DatabasePath)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "€", cfg.Currency)

	stages := cfg.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, types.StageID("prospect"), stages[0].ID)
	assert.Equal(t, "#FF0000", stages[0].Accent)
	assert.Equal(t, "signed", stages[1].Label, "label defaults to the id")

	assert.Equal(t, "Q", cfg.KeyMappings.Quit)
	assert.Equal(t, "j", cfg.KeyMappings.NextDeal, "unset keys fall back to defaults")
	assert.Equal(t, "a", cfg.KeyMappings.AddDeal)
	assert.Equal(t, "#123456", cfg.ColorScheme.Accent)
	assert.Equal(t, MonochromeColorScheme().Title, cfg.ColorScheme.Title)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	writeConfig(t, "database_path: /from/file.db\nlog_level: warn\n")
	t.Setenv("DEALDESK_DB_PATH", "/from/env.db")
	t.Setenv("DEALDESK_LOG_LEVEL", "error")
	t.Setenv("DEALDESK_CURRENCY", "£")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DatabasePath)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
	assert.Equal(t, "£", cfg.Currency)
}

func TestLoadConfig_ThemeFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	themeFile := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(themeFile, []byte("theme:\n  accent: \"#FF0000\"\n  amount: \"#00FF00\"\n"), 0o644))
	t.Setenv("DEALDESK_THEME_FILE", themeFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.Amount)
	assert.Equal(t, DefaultColorScheme().Title, cfg.ColorScheme.Title)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"duplicate stage", "pipeline:\n  - id: a\n  - id: a\n", ErrDuplicateStage},
		{"empty stage id", "pipeline:\n  - label: Nameless\n", ErrEmptyStageID},
		{"bad log level", "log_level: loud\n", ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.content)
			_, err := Load()
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		writeConfig(t, "pipeline: [\n")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate_NoStages(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	assert.ErrorIs(t, cfg.Validate(), ErrNoStages)
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Currency = "¥"
	cfg.Pipeline = cfg.Pipeline[:2]
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "¥", loaded.Currency)
	assert.Len(t, loaded.Pipeline, 2)
}
