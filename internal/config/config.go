package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/types"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment override, e.g. DEALDESK_DB_PATH
const envPrefix = "DEALDESK_"

// Config represents the application configuration
type Config struct {
	DatabasePath string `yaml:"database_path" env:"DB_PATH"`
	LogPath      string `yaml:"log_path" env:"LOG_PATH"`
	LogLevel     string `yaml:"log_level" env:"LOG_LEVEL"`
	Currency     string `yaml:"currency" env:"CURRENCY"`

	// Pipeline lists the board stages from left to right
	Pipeline []StageConfig `yaml:"pipeline"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// StageConfig is one configured pipeline stage
type StageConfig struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Accent string `yaml:"accent"`
}

// DefaultPipeline returns the stages a new board starts with
func DefaultPipeline() []StageConfig {
	return []StageConfig{
		{ID: "new-leads", Label: "New Leads", Accent: "#3B82F6"},
		{ID: "qualified", Label: "Qualified", Accent: "#A855F7"},
		{ID: "negotiation", Label: "Negotiation", Accent: "#EAB308"},
		{ID: "closed-won", Label: "Closed Won", Accent: "#22C55E"},
	}
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile loads and merges theme from DEALDESK_THEME_FILE environment variable
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(envPrefix + "THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("ignoring unreadable theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("ignoring invalid theme file", "path", themeFile, "error", err)
		return
	}
	config.ColorScheme.MergeFrom(themeConfig.Theme)
}

// Load loads config from the user's config directory, applies environment
// overrides and validates the result.
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	var config Config

	configPath, err := getConfigPath()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", configPath, err)
			}
		case !errors.Is(readErr, os.ErrNotExist):
			return nil, readErr
		}
	}

	// Load theme from DEALDESK_THEME_FILE if set
	loadThemeFile(&config)

	if err := env.ParseWithOptions(&config, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Validate checks the pipeline and log level
func (c *Config) Validate() error {
	if len(c.Pipeline) == 0 {
		return ErrNoStages
	}
	seen := make(map[string]bool, len(c.Pipeline))
	for i, s := range c.Pipeline {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: stage %d", ErrEmptyStageID, i+1)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateStage, s.ID)
		}
		seen[s.ID] = true
		if len(s.Label) > models.MaxStageLabelLength {
			return fmt.Errorf("%w: %s", ErrStageLabelTooLong, s.ID)
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Stages converts the pipeline to board stages
func (c *Config) Stages() []models.Stage {
	stages := make([]models.Stage, 0, len(c.Pipeline))
	for _, s := range c.Pipeline {
		stages = append(stages, models.Stage{
			ID:     types.StageID(s.ID),
			Label:  s.Label,
			Accent: s.Accent,
		})
	}
	return stages
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
	return level, nil
}

// getConfigPath returns the path to the config file
// Path returns the location Load reads the config file from
func Path() (string, error) {
	return getConfigPath()
}

func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "dealdesk", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "dealdesk", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Currency == "" {
		c.Currency = "$"
	}
	if len(c.Pipeline) == 0 {
		c.Pipeline = DefaultPipeline()
	}
	for i := range c.Pipeline {
		if c.Pipeline[i].Label == "" {
			c.Pipeline[i].Label = c.Pipeline[i].ID
		}
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
