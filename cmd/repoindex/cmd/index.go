package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/output"
)

func newIndexCmd() *cobra.Command {
	var chunkTargetChars, chunkMaxChars int
	var maxFileBytes int64
	var format string

	cmd := &cobra.Command{
		Use:   "index <path> [path...]",
		Short: "Build or refresh an index over one or more paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())
			slog.Info("index_started", slog.Int("path_count", len(args)))

			svc := newServiceForRun()
			defer svc.Close()

			res, err := svc.Index(cmd.Context(), args, handlers.IndexOptions{
				ChunkTargetChars: chunkTargetChars,
				ChunkMaxChars:    chunkMaxChars,
				MaxFileBytes:     maxFileBytes,
			})
			if err != nil {
				return err
			}

			slog.Info("index_completed", slog.String("index_id", res.IndexID), slog.Bool("created", res.Created))

			if format == "json" {
				return out.JSON(res)
			}
			verb := "refreshed"
			if res.Created {
				verb = "created"
			}
			out.Statusf("%s index %s: %d files, %d chunks", verb, res.IndexID, res.Stats.FileCount, res.Stats.ChunkCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkTargetChars, "chunk-target-chars", 0, "preferred chunk size in characters (default from config)")
	cmd.Flags().IntVar(&chunkMaxChars, "chunk-max-chars", 0, "hard chunk size ceiling in characters (default from config)")
	cmd.Flags().Int64Var(&maxFileBytes, "max-file-bytes", 0, "files larger than this are recorded but not chunked (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}
