package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paulowiz/genai-fundamentals/cmd/movierag/internal"
	"github.com/paulowiz/genai-fundamentals/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			return internal.NewJSONFormatter(cmd.OutOrStdout()).PrintJSON(version.Info())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return err
	},
}
