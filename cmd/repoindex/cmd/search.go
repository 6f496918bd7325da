package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/chunk"
	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/output"
	"github.com/repoindex/core/internal/search"
)

func newSearchCmd() *cobra.Command {
	var indexID, mode, format string
	var limit, maxTokens int
	var pathPrefix, kind, symbolPrefix, headingPrefix string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search an already-built index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			out := output.New(cmd.OutOrStdout())
			slog.Info("search_started", slog.String("index_id", indexID), slog.String("query", query))

			svc := newServiceForRun()
			defer svc.Close()

			resp, err := svc.Search(cmd.Context(), handlers.SearchRequest{
				IndexID:   indexID,
				Query:     query,
				Limit:     limit,
				MaxTokens: maxTokens,
				Mode:      mode,
				Filters: search.Filters{
					PathPrefix:    pathPrefix,
					Kind:          chunk.Kind(kind),
					SymbolPrefix:  symbolPrefix,
					HeadingPrefix: headingPrefix,
				},
			})
			if err != nil {
				return err
			}

			slog.Info("search_completed", slog.Int("result_count", len(resp.Results)))

			if format == "json" {
				return out.JSON(resp)
			}
			if resp.Partial {
				out.Status("(partial results: query deadline was reached)")
			}
			for _, r := range resp.Results {
				out.Statusf("%s:%d-%d  %s  [%s]", r.Path, r.StartLine, r.EndLine, r.Ref, r.Kind)
				out.Status(r.Snippet)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "index_id returned by a prior index call (required)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "one of lexical, semantic, hybrid, auto (default auto)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (default from config)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "token budget for returned content (default from config)")
	cmd.Flags().StringVar(&pathPrefix, "path-prefix", "", "restrict results to paths with this prefix")
	cmd.Flags().StringVar(&kind, "kind", "", "restrict results to chunks of this kind")
	cmd.Flags().StringVar(&symbolPrefix, "symbol-prefix", "", "restrict results to chunks whose symbol starts with this prefix")
	cmd.Flags().StringVar(&headingPrefix, "heading-prefix", "", "restrict results to chunks whose heading path starts with this prefix")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
