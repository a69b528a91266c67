package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"lumos-hq/relay/pkg/cli"
	"lumos-hq/relay/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file, including environment
variable overrides, without starting the bot.

Examples:
  # Validate the default config
  relay validate

  # Validate a specific config file
  relay validate --config /etc/relay/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Mode: %s\n", cfg.Telegram.Mode)
	fmt.Printf("  Providers: %d\n", len(cfg.Providers))
	fmt.Printf("  Default provider: %s\n", cfg.Router.DefaultProvider)
	fmt.Printf("  Transcript backend: %s\n", cfg.Transcript.Backend)
	return nil
}
