package setup

import (
	"github.com/spf13/cobra"
)

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prepare dealdesk on this machine",
		Long:  `Write the configuration file dealdesk reads its pipeline, colors and key bindings from.`,
	}

	cmd.AddCommand(ConfigCmd())

	return cmd
}
