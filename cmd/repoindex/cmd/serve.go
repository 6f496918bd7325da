package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server exposing index/search/explore/get_chunk/manage over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newServiceForRun()
			defer svc.Close()

			server, err := mcp.NewServer(svc, slog.Default())
			if err != nil {
				return err
			}

			return server.Serve(cmd.Context(), transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "transport to serve over (only stdio is supported)")

	return cmd
}
