package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/output"
)

func newGetChunkCmd() *cobra.Command {
	var indexID, format string

	cmd := &cobra.Command{
		Use:   "get-chunk <ref>",
		Short: "Fetch one chunk's full content by id or an unambiguous id prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := args[0]
			out := output.New(cmd.OutOrStdout())
			slog.Info("get_chunk_started", slog.String("index_id", indexID), slog.String("ref", ref))

			svc := newServiceForRun()
			defer svc.Close()

			c, err := svc.GetChunk(cmd.Context(), indexID, ref)
			if err != nil {
				return err
			}

			if format == "json" {
				return out.JSON(c)
			}
			out.Statusf("%s  %s:%d-%d  [%s]", c.ID, c.Path, c.StartLine, c.EndLine, c.Kind)
			out.Status(c.Content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "index_id returned by a prior index call (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
