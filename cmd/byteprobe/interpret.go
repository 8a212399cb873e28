package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/config"
	"github.com/nao1215/byteprobe/internal/controller"
	"github.com/nao1215/byteprobe/internal/database"
	"github.com/nao1215/byteprobe/internal/model"
	"github.com/nao1215/byteprobe/internal/report"
)

// NewInterpretCmd creates the interpret command.
func NewInterpretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret [file]...",
		Short: "Run the action pipeline over one or more inputs",
		Long: `Interpret reads each input and runs the configured actions over it, in order.

The report contains:
- A banner with the arguments, file, size, byte classes, hashes and timestamp
- One section per action
- The execution time

An action error aborts the report: no footer is printed and the command
exits with status 1.

Examples:
  # Hex dump a file
  byteprobe interpret sample.bin

  # Read standard input
  cat sample.bin | byteprobe interpret -

  # Several actions, with an option override
  byteprobe interpret -a hexdump -a timestamp --set timestamp.format=unix32 sample.bin

  # Interpret 64 bytes starting at offset 0x200
  byteprobe interpret --offset 0x200 --length 64 sample.bin

  # Interpret several files concurrently, Markdown report to a file
  byteprobe interpret --batch 4 --markdown -o report.md *.bin

  # Save the report in the history database
  byteprobe interpret --save sample.bin

Configuration file (.byteprobe) example:
  hashes: [md5, sha256]
  actions:
    - name: hexdump
    - name: timestamp
      options:
        format: unix32
        endianess: big`,
		Args: cobra.ArbitraryArgs,
		RunE: runInterpretCmd,
	}

	// Pipeline flags
	cmd.Flags().StringArrayP("action", "a", nil,
		"Action to run, repeatable, in order (default: configuration file actions, else hexdump)")
	cmd.Flags().StringArrayP("set", "s", nil,
		"Override an action option as kind.option=value, repeatable")
	cmd.Flags().StringSlice("hash", nil,
		"Digests printed in the banner (default: md5,sha1,sha256,sha3-256)")

	// Input window flags
	cmd.Flags().Int64("offset", 0,
		"Position of the first byte to interpret (decimal or 0x hex)")
	cmd.Flags().Int64P("length", "n", config.DefaultLength,
		"Number of bytes to interpret, -1 for all")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of inputs interpreted concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .byteprobe in current directory, XDG config or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"Also print the text report to stdout when --output is set")
	cmd.Flags().Bool("save", false,
		"Store complete reports in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runInterpretCmd executes the interpret command.
func runInterpretCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	invocations, err := cfg.Invocations()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)
	return runInterpret(cmd.Context(), cmd, cfg, invocations, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Actions, err = cmd.Flags().GetStringArray("action")
	if err != nil {
		return nil, err
	}

	cfg.Overrides, err = cmd.Flags().GetStringArray("set")
	if err != nil {
		return nil, err
	}

	cfg.Hashes, err = cmd.Flags().GetStringSlice("hash")
	if err != nil {
		return nil, err
	}

	cfg.Offset, err = cmd.Flags().GetInt64("offset")
	if err != nil {
		return nil, err
	}

	cfg.Length, err = cmd.Flags().GetInt64("length")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, run without a config file.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Tee, err = cmd.Flags().GetBool("tee")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Inputs = args

	return cfg, nil
}

// runInterpret interprets every input and saves the reports if requested.
func runInterpret(ctx context.Context, cmd *cobra.Command, cfg *config.Config, invocations []action.Invocation, logger *slog.Logger) error {
	logger.Info("starting interpretation",
		"inputs", cfg.Inputs,
		"actions", len(invocations),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open the database first so that a broken history directory fails
	// before any report is printed.
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	output, err := openOutput(cmd.OutOrStdout(), cfg.ReportFile)
	if err != nil {
		return err
	}
	defer output.Close()

	var tee io.Writer
	if cfg.Tee && cfg.ReportFile != "" {
		tee = cmd.OutOrStdout()
	}

	opts := []controller.Option{
		controller.WithLogger(logger),
		controller.WithHashes(cfg.HashNames()...),
		controller.WithWindow(cfg.Offset, cfg.Length),
		controller.WithTool(config.AppName, getVersion()),
		controller.WithStdin(cmd.InOrStdin()),
	}
	cmdline := commandLine(cmd, cfg.Inputs)

	var (
		reports []*model.Report
		runErr  error
	)
	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		reports, runErr = runBatch(ctx, cfg, invocations, opts, output, tee, cmdline, logger)
	} else {
		reports, runErr = runSequential(ctx, cfg, invocations, opts, output, tee, cmdline)
	}

	// Reports completed before a failure are still saved.
	for _, r := range reports {
		if err := saveReport(ctx, db, r, logger); err != nil {
			logger.Error("failed to save report", "path", r.Header.Path, "error", err)
		}
	}
	return runErr
}

// runSequential interprets the inputs one at a time, streaming each report.
// It stops at the first failing input.
func runSequential(ctx context.Context, cfg *config.Config, invocations []action.Invocation, opts []controller.Option, output, tee io.Writer, cmdline []string) ([]*model.Report, error) {
	reports := make([]*model.Report, 0, len(cfg.Inputs))
	for _, input := range cfg.Inputs {
		sink, err := newSink(cfg.ReportFormat(), output, tee)
		if err != nil {
			return reports, err
		}

		ctrl := controller.New(sink, invocations, opts...)
		r, runErr := ctrl.Run(ctx, input, cmdline)
		closeErr := ctrl.Close()
		if runErr != nil {
			return reports, runErr
		}
		if closeErr != nil {
			return reports, closeErr
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// runBatch interprets the inputs concurrently. Reports are written in input
// order once every input succeeded; with --tee they are replayed as text.
func runBatch(ctx context.Context, cfg *config.Config, invocations []action.Invocation, opts []controller.Option, output, tee io.Writer, cmdline []string, logger *slog.Logger) ([]*model.Report, error) {
	format := cfg.ReportFormat()
	bp := controller.NewBatchProcessor(
		func(out io.Writer) (*controller.Controller, error) {
			sink, err := report.New(format, out)
			if err != nil {
				return nil, err
			}
			return controller.New(sink, invocations, opts...), nil
		},
		controller.WithConcurrency(cfg.BatchSize),
		controller.WithBatchLogger(logger),
	)

	reports, err := bp.ProcessBatch(ctx, cfg.Inputs, output, cmdline)
	if err != nil {
		return nil, err
	}

	if tee != nil {
		for _, r := range reports {
			if err := report.Replay(report.NewTextWriter(tee), r); err != nil {
				return reports, err
			}
		}
	}
	return reports, nil
}

// newSink creates the report writer for format. With a tee the text report
// is written there as well.
func newSink(format string, output, tee io.Writer) (report.Writer, error) {
	w, err := report.New(format, output)
	if err != nil {
		return nil, err
	}
	if tee == nil {
		return w, nil
	}
	return report.NewMultiWriter(w, report.NewTextWriter(tee)), nil
}

// openOutput returns the report destination: path, or stdout if path is "".
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports may embed input bytes, so only the owner can read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-specified output path
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// nopCloser keeps stdout open when the report is done.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// commandLine reconstructs the arguments shown in the banner from the
// flags the user set.
func commandLine(cmd *cobra.Command, inputs []string) []string {
	parts := strings.Fields(cmd.CommandPath())
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			for _, v := range sv.GetSlice() {
				parts = append(parts, "--"+f.Name+"="+v)
			}
			return
		}
		parts = append(parts, "--"+f.Name+"="+f.Value.String())
	})
	return append(parts, inputs...)
}

// saveReport stores a complete report in the history database.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.HistoryDB, r *model.Report, logger *slog.Logger) error {
	if db == nil || !r.Complete() {
		return nil
	}

	id, err := db.SaveReport(ctx, r)
	if err != nil {
		return err
	}

	logger.Info("report saved to database", "path", r.Header.Path, "id", id)
	return nil
}
