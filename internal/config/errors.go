package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoInput is returned when no input file is given.
	ErrNoInput = errors.New("no input specified: provide a file path or - for standard input")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidOffset is returned when the window offset is negative.
	ErrInvalidOffset = errors.New("invalid offset: must be non-negative")

	// ErrInvalidLength is returned when the window length is below -1.
	// -1 selects everything up to the end of the input.
	ErrInvalidLength = errors.New("invalid length: must be -1 or non-negative")

	// ErrDuplicateStdin is returned when standard input is listed more than once.
	ErrDuplicateStdin = errors.New("standard input (-) can only be read once")

	// ErrInvalidOverride is returned for a --set value not of the form
	// kind.option=value.
	ErrInvalidOverride = errors.New("invalid override: expected kind.option=value")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
