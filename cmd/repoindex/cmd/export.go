package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/output"
)

func newExportCmd() *cobra.Command {
	var indexID, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Package a built index into a portable zip bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())
			slog.Info("export_started", slog.String("index_id", indexID))

			if indexID == "" {
				return coreerrors.New(coreerrors.KindInvalidArgument, "index is required")
			}
			if outPath == "" {
				outPath = indexID + ".zip"
			}

			f, err := os.Create(outPath)
			if err != nil {
				return coreerrors.Wrap(coreerrors.KindIOError, "create "+outPath, err)
			}
			defer f.Close()

			svc := newServiceForRun()
			defer svc.Close()

			if err := svc.Export(cmd.Context(), indexID, f); err != nil {
				return err
			}

			out.Statusf("wrote bundle to %s", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexID, "index", "i", "", "index_id to export (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <index_id>.zip)")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
