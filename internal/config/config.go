package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/byteprobe/internal/action"
	"github.com/nao1215/byteprobe/internal/controller"
	"github.com/nao1215/byteprobe/internal/report"
)

// Default configuration values.
const (
	// DefaultBatchSize of 1 interprets inputs one after another and streams
	// each report as it is produced.
	DefaultBatchSize = 1

	// DefaultLength selects everything from the offset to the end of input.
	DefaultLength = -1

	// AppName is the application name used for XDG directory paths.
	AppName = "byteprobe"
)

// DefaultActions returns the actions run when neither the command line nor
// the configuration file names any.
func DefaultActions() []string {
	return []string{string(action.KindHexdump)}
}

// Config holds all configuration options for an interpret run.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Inputs is the list of files to interpret. "-" selects standard input.
	Inputs []string

	// Actions lists action kinds given with --action, in order.
	// When empty, the configuration file's actions are used.
	Actions []string

	// Overrides holds --set values of the form kind.option=value.
	// They apply to every invocation of the kind and win over options from
	// the configuration file.
	Overrides []string

	// Hashes lists the digests printed in the header.
	// When empty, the configuration file's list or the defaults are used.
	Hashes []string

	// Offset is the position of the first byte to interpret.
	Offset int64

	// Length is the number of bytes to interpret, or -1 for all.
	Length int64

	// BatchSize is the number of inputs interpreted concurrently.
	// 1 processes inputs sequentially.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the locations listed in FindConfigFile.
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File

	// JSONReport enables JSON report output instead of the text format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the text format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Tee also prints the text report to stdout when ReportFile is set.
	Tee bool

	// DBDir is the directory path for the SQLite history database.
	// Defaults to XDG data directory (~/.local/share/byteprobe on Linux).
	DBDir string

	// SaveToDB stores every complete report in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because some defaults are non-zero (length, batch size).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Length:    DefaultLength,
		BatchSize: DefaultBatchSize,
		DBDir:     XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for byteprobe.
// On Linux: ~/.local/share/byteprobe
// On macOS: ~/Library/Application Support/byteprobe
// On Windows: %LOCALAPPDATA%\byteprobe
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for byteprobe.
// On Linux: ~/.config/byteprobe
// On macOS: ~/Library/Application Support/byteprobe
// On Windows: %APPDATA%\byteprobe
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any input is read.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	stdin := 0
	for _, in := range c.Inputs {
		if in == controller.StdinPath {
			stdin++
		}
	}
	if stdin > 1 {
		return ErrDuplicateStdin
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Offset < 0 {
		return ErrInvalidOffset
	}

	if c.Length < DefaultLength {
		return ErrInvalidLength
	}

	if _, err := ParseOverrides(c.Overrides); err != nil {
		return err
	}

	if _, err := controller.NormalizeHashes(c.HashNames()); err != nil {
		return err
	}

	return nil
}

// ReportFormat returns the report format name selected by the flags.
func (c *Config) ReportFormat() string {
	switch {
	case c.JSONReport:
		return report.FormatJSON
	case c.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// HashNames returns the digests to print: the command line list, else the
// configuration file's list, else the defaults.
func (c *Config) HashNames() []string {
	if len(c.Hashes) > 0 {
		return c.Hashes
	}
	if c.File != nil && len(c.File.Hashes) > 0 {
		return c.File.Hashes
	}
	return controller.DefaultHashes()
}

// ActionSpecs returns the actions to run: the command line list, else the
// configuration file's list, else DefaultActions.
func (c *Config) ActionSpecs() []ActionSpec {
	names := c.Actions
	if len(names) == 0 && c.File != nil && len(c.File.Actions) > 0 {
		return c.File.Actions
	}
	if len(names) == 0 {
		names = DefaultActions()
	}

	specs := make([]ActionSpec, len(names))
	for i, name := range names {
		specs[i] = ActionSpec{Name: name}
	}
	return specs
}

// Invocations builds the action invocations of the run.
//
// Each invocation's override is the ActionSpec options overlaid with the --set
// values for its kind. Every override is resolved against the action
// defaults here, so an invalid option fails before any input is read.
func (c *Config) Invocations() ([]action.Invocation, error) {
	overrides, err := ParseOverrides(c.Overrides)
	if err != nil {
		return nil, err
	}

	specs := c.ActionSpecs()
	invocations := make([]action.Invocation, 0, len(specs))
	for i, spec := range specs {
		kind, err := action.ParseKind(spec.Name)
		if err != nil {
			return nil, fmt.Errorf("action #%d: %w", i+1, err)
		}
		a, err := action.New(kind)
		if err != nil {
			return nil, fmt.Errorf("action #%d: %w", i+1, err)
		}

		override := action.Config(spec.Options).Clone()
		for k, v := range overrides[kind] {
			override[k] = v
		}

		inv := action.Invocation{Action: a, Override: override}
		if _, err := inv.Resolve(); err != nil {
			return nil, fmt.Errorf("action #%d (%s): %w", i+1, kind, err)
		}
		invocations = append(invocations, inv)
	}
	return invocations, nil
}

// ParseOverride splits "kind.option=value" into its parts.
func ParseOverride(s string) (action.Kind, string, string, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidOverride, s)
	}
	name, option, ok := strings.Cut(strings.TrimSpace(target), ".")
	if !ok || option == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidOverride, s)
	}
	kind, err := action.ParseKind(name)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %q: %w", ErrInvalidOverride, s, err)
	}
	return kind, option, value, nil
}

// ParseOverrides groups --set values by action kind.
// Values stay strings; actions coerce them to the option's type.
func ParseOverrides(list []string) (map[action.Kind]action.Config, error) {
	out := make(map[action.Kind]action.Config)
	for _, s := range list {
		kind, option, value, err := ParseOverride(s)
		if err != nil {
			return nil, err
		}
		if out[kind] == nil {
			out[kind] = action.Config{}
		}
		out[kind][option] = value
	}
	return out, nil
}
