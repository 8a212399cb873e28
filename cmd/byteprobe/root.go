package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	applog "github.com/nao1215/byteprobe/internal/log"
)

// NewRootCmd creates the root command for byteprobe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "byteprobe",
		Short: "Interpret raw bytes with a pipeline of actions",
		Long: `byteprobe interprets raw bytes with an ordered pipeline of actions.

Each action renders the same input in its own way (hex dump, timestamps,
integers, strings, GUIDs, CBOR, EXIF). The report starts with a banner
describing the input and ends with the execution time.

Actions and options come from the command line or from a .byteprobe
configuration file (see 'byteprobe init').`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewInterpretCmd())
	cmd.AddCommand(NewActionsCmd())
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates the stderr logger for cmd and installs it as the default.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	logger := applog.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)
	return logger
}
