package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/snapdoc/internal/config"
	"github.com/harrison/snapdoc/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded snapshot runs",
		Long: `List recent snapshot runs from the history database, newest first.

Each line shows when the snapshot was generated, the root directory and
extension, the file counts, and the output file that was written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = defaultConfigFile
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				dbPath = cfg.HistoryDBPath()
			}
			limit, _ := cmd.Flags().GetInt("limit")

			return listHistory(dbPath, limit, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to config file (default: snapdoc.yaml)")
	cmd.Flags().String("db", "", "Path to history database (default: {output_dir}/history.db)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	return cmd
}

// listHistory prints recent runs from the database at dbPath.
func listHistory(dbPath string, limit int, out io.Writer) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No snapshots recorded yet.")
		return nil
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No snapshots recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %s (%s)  %d target / %d infra  ->  %s\n",
			run.CreatedAt.Format(time.DateTime),
			run.Root, run.Extension,
			run.TargetCount, run.InfraCount,
			run.OutputFile)
	}
	return nil
}
