package cli

import (
	"fmt"
	"os"

	"github.com/harun/plotpipe/internal/config"
	"github.com/spf13/cobra"
)

var configureForce bool

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Write the effective configuration to the config file",
	Long: `Write the effective configuration (defaults, config file, PLOTPIPE_*
environment variables and command-line overrides) to the config file so it
can be edited by hand.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().BoolVar(&configureForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(cfgFile)
	configPath := loader.GetConfigPath()
	if configPath == "" {
		return fmt.Errorf("no config path: pass --config")
	}

	if _, err := os.Stat(configPath); err == nil && !configureForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := loader.Save(appConfig); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", configPath)
	return nil
}
