package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/snapdoc/internal/config"
	"github.com/harrison/snapdoc/internal/display"
	"github.com/harrison/snapdoc/internal/history"
	"github.com/harrison/snapdoc/internal/logger"
	"github.com/harrison/snapdoc/internal/outfile"
	"github.com/harrison/snapdoc/internal/policy"
	"github.com/harrison/snapdoc/internal/snapshot"
)

// defaultConfigFile is checked when --config is not given. A missing file is
// not an error; defaults apply.
const defaultConfigFile = "snapdoc.yaml"

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [directory] [extension]",
		Short: "Generate a markdown snapshot of a directory tree",
		Long: fmt.Sprintf(`Generate a markdown snapshot of a directory tree.

The snapshot contains a metadata section (file counts and an indented tree
listing) followed by the content of every selected file. Files are selected
by the requested extension (%s) plus a built-in set of infrastructure
filenames such as Dockerfile, docker-compose.yml, and Makefile.

Directory and extension can come from positional arguments or from a YAML
config file; flags override config values.

Examples:
  # Snapshot a Python project
  snapdoc generate ./myservice py

  # Custom title and extra pruned directories
  snapdoc generate ./myservice py --title "My Service" --exclude-dir generated

  # Settings pinned in a config file
  snapdoc generate --config snapdoc.yaml

  # Verify document structure before writing, skip history recording
  snapdoc generate ./app dart --verify --no-history`,
			strings.Join(policy.SupportedExtensions(), ", ")),
		Args:         cobra.MaximumNArgs(2),
		RunE:         runGenerate,
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: snapdoc.yaml)")
	cmd.Flags().String("title", "", "Title for the markdown output (default: last path segment)")
	cmd.Flags().StringArray("exclude-dir", nil, "Extra directory name to prune (repeatable)")
	cmd.Flags().String("output-dir", "", "Directory for snapshot files (default: output)")
	cmd.Flags().String("log-level", "", "Console verbosity: trace, debug, info, warn, error")
	cmd.Flags().Bool("verify", false, "Re-parse the rendered markdown and check its structure")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history database")

	return cmd
}

// runGenerate resolves configuration from file, arguments, and flags, then
// executes the snapshot run.
func runGenerate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	// Positional arguments take the place of config values.
	if len(args) >= 1 {
		cfg.Path = args[0]
	}
	if len(args) == 2 {
		cfg.Extension = args[1]
	}

	// Flags override both.
	var title, outputDir *string
	var excludeDirs *[]string
	var noHistory *bool
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		title = &v
	}
	if cmd.Flags().Changed("output-dir") {
		v, _ := cmd.Flags().GetString("output-dir")
		outputDir = &v
	}
	if cmd.Flags().Changed("exclude-dir") {
		v, _ := cmd.Flags().GetStringArray("exclude-dir")
		excludeDirs = &v
	}
	if cmd.Flags().Changed("no-history") {
		v, _ := cmd.Flags().GetBool("no-history")
		noHistory = &v
	}
	cfg.MergeWithFlags(nil, nil, title, outputDir, excludeDirs, noHistory)
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	verify, _ := cmd.Flags().GetBool("verify")
	return executeGenerate(cfg, verify, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// executeGenerate runs the snapshot pipeline for a validated configuration
// and writes the output file. Split from runGenerate for testing.
func executeGenerate(cfg *config.Config, verify bool, out, errOut io.Writer) error {
	log := logger.NewConsole(errOut, cfg.LogLevel)
	runID := uuid.New().String()
	started := time.Now()

	log.Debugf("starting snapshot run %s (root=%s extension=%s)", runID, cfg.Path, cfg.Extension)

	snap, err := snapshot.Generate(snapshot.Params{
		Root:             cfg.Path,
		Extension:        cfg.Extension,
		Title:            cfg.Title,
		ExtraExcludeDirs: cfg.ExcludeDir,
		Verify:           verify,
	})
	if err != nil {
		return err
	}

	// Unreadable subtrees were skipped; tell the user which ones.
	if len(snap.ScanErrors) > 0 {
		display.ScanWarning(snap.ScanErrors).Display(errOut)
	}

	outPath := filepath.Join(cfg.OutputDir, outfile.Name(snap.Title, started))
	if err := outfile.Write(outPath, []byte(snap.Document)); err != nil {
		return err
	}

	log.Debugf("wrote %d target and %d infrastructure files to %s",
		snap.TargetCount, snap.InfraCount, outPath)

	if cfg.History.Enabled {
		recordRun(log, cfg, history.Run{
			RunID:       runID,
			Root:        cfg.Path,
			Extension:   cfg.Extension,
			Title:       snap.Title,
			TargetCount: snap.TargetCount,
			InfraCount:  snap.InfraCount,
			OutputFile:  outPath,
			Duration:    time.Since(started),
		})
	}

	display.Success(out, "Markdown file '%s' created successfully.", outPath)
	return nil
}

// recordRun appends the run to the history store. History failures are
// logged, never fatal: the snapshot is already on disk.
func recordRun(log *logger.Console, cfg *config.Config, run history.Run) {
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		log.Warnf("history disabled for this run: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(run); err != nil {
		log.Warnf("failed to record run in history: %v", err)
	}
}
