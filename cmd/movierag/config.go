package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paulowiz/genai-fundamentals/cmd/movierag/internal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
	Long: `The config command shows and validates the configuration resolved from
defaults, the YAML config file, the .env file and the environment.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration with credentials masked.

Output is YAML by default; use -o json for JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		redacted := appState.cfg.Redacted()

		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			return internal.NewJSONFormatter(cmd.OutOrStdout()).PrintJSON(redacted)
		}

		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		if err := encoder.Encode(redacted); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return encoder.Close()
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Long: `Load and validate the configuration without connecting to any service.
Exits with code 10 when a required setting is missing or invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// loadConfig has already validated; reaching here means success.
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}
