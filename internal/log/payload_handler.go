package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// payloadKeys contains attribute keys whose values are input bytes.
var payloadKeys = map[string]bool{
	"data":    true,
	"payload": true,
	"bytes":   true,
	"buffer":  true,
	"content": true,
	"raw":     true,
}

// MaxStringLength is the longest string value logged unchanged.
const MaxStringLength = 256

// PayloadHandler wraps an slog.Handler to keep input bytes out of logs.
// It intercepts log records and summarises payload attributes before
// passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Libraries that accept a *slog.Logger get the same treatment
type PayloadHandler struct {
	// handler is the underlying slog handler that receives summarised records.
	handler slog.Handler
}

// NewPayloadHandler creates a new PayloadHandler wrapping the given handler.
// If handler is nil, the returned PayloadHandler will use slog.Default().Handler().
func NewPayloadHandler(handler slog.Handler) *PayloadHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &PayloadHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *PayloadHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle summarises the record's attributes and passes it to the underlying handler.
func (h *PayloadHandler) Handle(ctx context.Context, r slog.Record) error {
	summarised := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		summarised.AddAttrs(summarise(a))
		return true
	})

	return h.handler.Handle(ctx, summarised)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are summarised before being added.
func (h *PayloadHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = summarise(a)
	}
	return &PayloadHandler{handler: h.handler.WithAttrs(out)}
}

// WithGroup returns a new handler with the given group name.
func (h *PayloadHandler) WithGroup(name string) slog.Handler {
	return &PayloadHandler{handler: h.handler.WithGroup(name)}
}

// summarise rewrites a single attribute, recursively handling groups.
func summarise(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = summarise(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}

	case slog.KindAny:
		if b, ok := v.Any().([]byte); ok {
			return slog.String(a.Key, sizeOf(len(b)))
		}

	case slog.KindString:
		s := v.String()
		if payloadKeys[strings.ToLower(a.Key)] {
			return slog.String(a.Key, sizeOf(len(s)))
		}
		if len(s) > MaxStringLength {
			return slog.String(a.Key, fmt.Sprintf("%s...(%d more bytes)", s[:MaxStringLength], len(s)-MaxStringLength))
		}

	default:
	}

	return slog.Attr{Key: a.Key, Value: v}
}

func sizeOf(n int) string {
	return fmt.Sprintf("<%d bytes>", n)
}

// NewLogger creates a new slog.Logger that writes text to w.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPayloadHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger that writes JSON to w.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPayloadHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
