package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/config"
	coreerrors "github.com/repoindex/core/internal/errors"
	"github.com/repoindex/core/internal/output"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a " + config.ProjectFileName + " scaffold in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.New(cmd.OutOrStdout())

			path := filepath.Join(".", config.ProjectFileName)
			if _, err := os.Stat(path); err == nil {
				return coreerrors.New(coreerrors.KindInvalidArgument, path+" already exists")
			}

			defaults := config.Defaults()
			if err := defaults.WriteYAML(path); err != nil {
				return coreerrors.Wrap(coreerrors.KindIOError, "write "+path, err)
			}

			out.Statusf("wrote %s", path)
			return nil
		},
	}
	return cmd
}
