package controller

import "errors"

var (
	// ErrReadInput is returned when the input cannot be read.
	ErrReadInput = errors.New("failed to read input")

	// ErrActionFailed wraps the error of an action that aborted a run.
	ErrActionFailed = errors.New("action failed")

	// ErrUnknownHash is returned for a hash algorithm outside the supported set.
	ErrUnknownHash = errors.New("unknown hash algorithm")

	// ErrHeaderNotPrinted is returned by PrintExecutionTime when no header
	// was printed first.
	ErrHeaderNotPrinted = errors.New("header not printed")
)
