package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/byteprobe/internal/config"
	"github.com/nao1215/byteprobe/internal/database"
	"github.com/nao1215/byteprobe/internal/report"
)

// NewHistoryCmd creates the history command.
// It lists reports stored with 'interpret --save' and replays them.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List reports saved in the history database",
		Long: `History lists the reports stored with 'byteprobe interpret --save', newest first.

Examples:
  # List all saved reports
  byteprobe history

  # Reports of one input
  byteprobe history --path sample.bin

  # Reports of any input with this SHA-256
  byteprobe history --sha256 3a7bd3e2...

  # List all interpreted inputs
  byteprobe history --list-paths

  # Print report 5 again, as Markdown
  byteprobe history show --markdown 5`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.PersistentFlags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	cmd.Flags().StringP("path", "p", "", "Only reports of this input path")
	cmd.Flags().String("sha256", "", "Only reports of inputs with this SHA-256")
	cmd.Flags().IntP("limit", "l", 0, "Maximum number of reports, 0 for all")
	cmd.Flags().BoolP("list-paths", "L", false, "List the distinct input paths instead")

	cmd.AddCommand(newHistoryShowCmd())

	return cmd
}

// newHistoryShowCmd creates the history show subcommand.
func newHistoryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShowCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")

	return cmd
}

// openHistoryDB opens the existing database in the --db-dir directory.
func openHistoryDB(cmd *cobra.Command) (*database.HistoryDB, error) {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	return database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter := database.Filter{}

	var err error
	filter.Path, err = cmd.Flags().GetString("path")
	if err != nil {
		return err
	}
	filter.SHA256, err = cmd.Flags().GetString("sha256")
	if err != nil {
		return err
	}
	filter.Limit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	listPaths, err := cmd.Flags().GetBool("list-paths")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	db, err := openHistoryDB(cmd)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(out, "No saved reports found.")
		fmt.Fprintln(out, "\nUse 'byteprobe interpret --save <file>' to save a report.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if listPaths {
		paths, err := db.ListPaths(ctx)
		if err != nil {
			return err
		}
		printPaths(out, paths)
		return nil
	}

	reports, err := db.ListReports(ctx, filter)
	if err != nil {
		return err
	}
	printHistory(out, reports)
	return nil
}

// printPaths prints the distinct input paths.
func printPaths(out io.Writer, paths []string) {
	if len(paths) == 0 {
		fmt.Fprintln(out, "No saved reports found.")
		return
	}

	fmt.Fprintf(out, "Interpreted inputs (%d):\n\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(out, "  • %s\n", p)
	}
	fmt.Fprintln(out, "\nUse 'byteprobe history --path <path>' to see the reports of an input.")
}

// printHistory prints one line per report.
func printHistory(out io.Writer, reports []database.ReportMetadata) {
	if len(reports) == 0 {
		fmt.Fprintln(out, "No saved reports found.")
		return
	}

	fmt.Fprintf(out, "Saved reports (%d):\n\n", len(reports))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %-12s  %-12s  %-24s  %s\n", "ID", "Date", "Size", "Elapsed", "SHA-256", "Actions", "Path")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 110))

	for _, meta := range reports {
		sha := meta.SHA256
		if len(sha) > 12 {
			sha = sha[:12]
		}
		if sha == "" {
			sha = "-"
		}
		fmt.Fprintf(out, "  %-6d  %-20s  %-10s  %-12s  %-12s  %-24s  %s\n",
			meta.ID,
			meta.Timestamp.Local().Format("2006-01-02 15:04:05"),
			humanize.Bytes(uint64(meta.Size)), //nolint:gosec // sizes are never negative
			formatElapsed(meta),
			sha,
			strings.Join(meta.Actions, ","),
			meta.Path,
		)
	}
	fmt.Fprintln(out, "\nUse 'byteprobe history show <id>' to print a report.")
}

// runHistoryShowCmd executes the history show command.
func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid report id %q: %w", args[0], err)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	cfg := config.Config{JSONReport: jsonOutput, MarkdownReport: markdownOutput}
	if jsonOutput && markdownOutput {
		return config.ErrConflictingReportFormats
	}

	db, err := openHistoryDB(cmd)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	r, err := db.GetReportByID(cmd.Context(), id)
	if err != nil {
		return err
	}

	w, err := report.New(cfg.ReportFormat(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return report.Replay(w, r)
}

// formatElapsed is the execution time shown in listings.
// Incomplete reports have none.
func formatElapsed(meta database.ReportMetadata) string {
	if !meta.Complete {
		return "incomplete"
	}
	return meta.Elapsed.Round(time.Microsecond).String()
}
