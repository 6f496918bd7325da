// Command repoindex builds and searches a local index over one or more
// source trees, either directly from the command line or as an MCP server
// for AI coding assistants.
package main

import (
	"fmt"
	"os"

	"github.com/repoindex/core/cmd/repoindex/cmd"
)

func main() {
	root := cmd.NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cmd.ExitCode(err))
	}
}
