// Package log provides byteprobe's logging setup, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic summarising of raw input bytes so that logs never carry
//     file contents
//   - Truncation of very long string values
//   - Configurable log levels with verbose mode support
//
// # Payload Handling
//
// The PayloadHandler rewrites attributes before they reach the underlying
// handler:
//   - []byte values are replaced with "<N bytes>"
//   - string values under payload keys (data, payload, bytes, buffer,
//     content) are replaced with "<N bytes>"
//   - other strings longer than MaxStringLength are cut and marked
//
// # Usage
//
//	// Create a logger on stderr
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("input loaded",
//	    "path", "sample.bin",
//	    "data", raw, // logged as "<4096 bytes>"
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
