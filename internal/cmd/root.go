package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for snapdoc
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapdoc",
		Short: "Bundle a project's source files into one markdown document",
		Long: `Snapdoc walks a directory tree, selects files matching a configured
extension plus the project's build and dependency manifests, and emits a
single markdown document with a directory listing and the full text of each
selected file.

The result is a reviewable, shareable snapshot of a codebase, suitable for
archiving or for feeding to a language model.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
