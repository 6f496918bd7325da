package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/output"
)

func newExploreCmd() *cobra.Command {
	var indexID, mode, pathFilter, format string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "List a built index's files, outline, or symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())
			slog.Info("explore_started", slog.String("index_id", indexID), slog.String("mode", mode))

			svc := newServiceForRun()
			defer svc.Close()

			res, err := svc.Explore(cmd.Context(), indexID, handlers.ExploreMode(mode), pathFilter)
			if err != nil {
				return err
			}

			if format == "json" {
				return out.JSON(res)
			}
			for _, item := range res.Items {
				switch handlers.ExploreMode(mode) {
				case handlers.ExploreFiles:
					out.Statusf("%s  (%s, %s, %d lines)", item.Path, item.Kind, item.Language, item.LineCount)
				case handlers.ExploreOutline:
					out.Statusf("%s:%d-%d  %s  %v", item.Path, item.StartLine, item.EndLine, item.Ref, item.HeadingPath)
				case handlers.ExploreSymbols:
					out.Statusf("%s:%d-%d  %s  %s", item.Path, item.StartLine, item.EndLine, item.Ref, item.Symbol)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "index_id returned by a prior index call (required)")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(handlers.ExploreFiles), "one of files, outline, symbols")
	cmd.Flags().StringVar(&pathFilter, "path-filter", "", "restrict to paths with this prefix")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
