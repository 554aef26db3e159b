package main

import (
	"github.com/spf13/cobra"

	"github.com/paulowiz/genai-fundamentals/cmd/movierag/internal"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	OutputFormat string
	ConfigFile   string
	EnvFile      string
}

var globalFlags = &GlobalFlags{}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "output", "o", "text", "Output format (text|json)")
	cmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "Path to config file (default: ~/.movierag/config.yaml)")
	cmd.PersistentFlags().StringVar(&globalFlags.EnvFile, "env-file", "", "Path to dotenv file (default: ./.env)")
}

// ParseGlobalFlags validates global flags from the command
func ParseGlobalFlags(cmd *cobra.Command) (*GlobalFlags, error) {
	if _, err := internal.ParseOutputFormat(globalFlags.OutputFormat); err != nil {
		return nil, err
	}
	return globalFlags, nil
}

// GetOutputFormat returns the parsed OutputFormat enum
func (f *GlobalFlags) GetOutputFormat() internal.OutputFormat {
	format, err := internal.ParseOutputFormat(f.OutputFormat)
	if err != nil {
		return internal.FormatText
	}
	return format
}
