// Package cmd provides the CLI commands for repoindex.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/repoindex/core/internal/config"
	"github.com/repoindex/core/internal/handlers"
	"github.com/repoindex/core/internal/logging"
	"github.com/repoindex/core/pkg/version"
)

var (
	cfg            *config.Config
	loggingCleanup func()
	debugMode      bool
)

// NewRootCmd creates the root command for the repoindex CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "repoindex",
		Short: "Build and search a local index over a source tree",
		Long: `repoindex builds a hybrid lexical/semantic index over one or more
local directories and serves search, exploration, and retrieval over it,
either directly from the command line or as an MCP server for AI coding
assistants.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRun,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if loggingCleanup != nil {
				loggingCleanup()
				loggingCleanup = nil
			}
			return nil
		},
	}
	root.SetVersionTemplate("repoindex version {{.Version}}\n")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	root.AddCommand(newIndexCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newGetChunkCmd())
	root.AddCommand(newManageCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// setupRun loads configuration and sets up logging ahead of every
// subcommand, mirroring the teacher's PersistentPreRunE hook.
func setupRun(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg = loaded

	logCfg := logging.DefaultConfig()
	logCfg.WriteToStderr = false
	if debugMode {
		logCfg = logging.DebugConfig()
		logCfg.WriteToStderr = false
	}
	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		// Logging is diagnostic, not load-bearing: a file-logging failure
		// (e.g. an unwritable home directory) should not stop the command
		// from running.
		return nil
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	return nil
}

// newServiceForRun builds a handlers.Service over the resolved configuration's
// storage directory.
func newServiceForRun() *handlers.Service {
	return handlers.NewService(cfg.StorageDir, cfg)
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
