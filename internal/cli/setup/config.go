package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/dealdesk/internal/config"
)

// ErrConfigExists is returned when a config file is already present and
// --force was not given
var ErrConfigExists = errors.New("config file already exists")

// ConfigCmd returns the setup config subcommand
func ConfigCmd() *cobra.Command {
	var checkFlag bool
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the default configuration file",
		Long: `Write the current configuration, including the default pipeline, to
$XDG_CONFIG_HOME/dealdesk/config.yaml (or ~/.config/dealdesk/config.yaml).

Examples:
  # Write the defaults
  dealdesk setup config

  # Show where the config lives and whether it exists
  dealdesk setup config --check

  # Rewrite an existing file, keeping its values and filling in new defaults
  dealdesk setup config --force
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return fmt.Errorf("failed to locate config: %w", err)
			}

			if checkFlag {
				return CheckConfig(cmd, path)
			}
			return WriteConfig(cmd, path, forceFlag)
		},
	}

	cmd.Flags().BoolVar(&checkFlag, "check", false, "Show the config path and whether it exists")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")

	return cmd
}

// CheckConfig reports the config path and whether a file is present
func CheckConfig(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "✗ No config file at %s (defaults in use)\n", path)
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "✓ Config file at %s\n", path)
	return nil
}

// WriteConfig saves the loaded configuration. An existing file is only
// rewritten with force.
func WriteConfig(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w at %s (use --force to rewrite it)", ErrConfigExists, path)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s with %d stages\n", path, len(cfg.Pipeline))
	return nil
}
