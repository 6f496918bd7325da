package cmd

import (
	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/output"
	"github.com/repoindex/core/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())
			if format == "json" {
				return out.JSON(version.GetInfo())
			}
			out.Status(version.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}
