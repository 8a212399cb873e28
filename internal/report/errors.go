package report

import "errors"

var (
	// ErrHeaderNotWritten is returned when a section or footer arrives
	// before the header.
	ErrHeaderNotWritten = errors.New("report header not written")

	// ErrUnknownFormat is returned by New for an unsupported format name.
	ErrUnknownFormat = errors.New("unknown report format")
)
