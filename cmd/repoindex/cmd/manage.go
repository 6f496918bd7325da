package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/output"
)

func newManageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage",
		Short: "List, delete, or verify built indexes",
	}
	cmd.AddCommand(newManageListCmd())
	cmd.AddCommand(newManageDeleteCmd())
	cmd.AddCommand(newManageVerifyCmd())
	return cmd
}

func runManage(cmd *cobra.Command, action handlers.ManageAction, indexID, format string) error {
	out := output.New(cmd.OutOrStdout())
	slog.Info("manage_started", slog.String("action", string(action)), slog.String("index_id", indexID))

	svc := newServiceForRun()
	defer svc.Close()

	res, err := svc.Manage(cmd.Context(), action, indexID)
	if err != nil {
		return err
	}

	if format == "json" {
		return out.JSON(res)
	}

	switch action {
	case handlers.ManageList:
		for _, s := range res.Indexes {
			out.Statusf("%s  %s  %d files, %d chunks", s.IndexID, s.RootPath, s.FileCount, s.ChunkCount)
		}
	case handlers.ManageDelete:
		out.Statusf("deleted index %s", indexID)
	case handlers.ManageVerify:
		if len(res.Discrepancies) == 0 {
			out.Status("no discrepancies found")
			return nil
		}
		for _, d := range res.Discrepancies {
			out.Statusf("%s: expected %s, got %s", d.Field, d.Expected, d.Actual)
		}
	}
	return nil
}

func newManageListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all built indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManage(cmd, handlers.ManageList, "", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}

func newManageDeleteCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "delete <index_id>",
		Short: "Delete a built index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManage(cmd, handlers.ManageDelete, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}

func newManageVerifyCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "verify <index_id>",
		Short: "Check a built index's internal consistency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runManage(cmd, handlers.ManageVerify, args[0], format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}
