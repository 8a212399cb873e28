package report

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/nao1215/byteprobe/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout or an MCP response
// with the same API.
type Writer interface {
	// WriteHeader outputs the banner. It is called once, first.
	WriteHeader(header *model.Header) error

	// WriteSection outputs the result of one action.
	WriteSection(section *model.Section) error

	// WriteFooter outputs the execution time. It is not called when an
	// action aborts the run.
	WriteFooter(footer *model.Footer) error

	// Close flushes anything the writer buffered. It must be called once
	// the run is over, whether or not it succeeded.
	Close() error
}

// Format names accepted by New.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// New creates the Writer for a format name.
func New(format string, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Replay writes a stored report to w and closes it.
// The footer is only written when the report is complete.
func Replay(w Writer, report *model.Report) error {
	if err := w.WriteHeader(&report.Header); err != nil {
		return err
	}
	for i := range report.Sections {
		if err := w.WriteSection(&report.Sections[i]); err != nil {
			return err
		}
	}
	if report.Footer != nil {
		if err := w.WriteFooter(report.Footer); err != nil {
			return err
		}
	}
	return w.Close()
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for printing the text report on the terminal while a
// file receives the JSON or Markdown rendering.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteHeader outputs the header to all Writers, stopping on the first error.
func (m *MultiWriter) WriteHeader(header *model.Header) error {
	for _, w := range m.writers {
		if err := w.WriteHeader(header); err != nil {
			return err
		}
	}
	return nil
}

// WriteSection outputs the section to all Writers, stopping on the first error.
func (m *MultiWriter) WriteSection(section *model.Section) error {
	for _, w := range m.writers {
		if err := w.WriteSection(section); err != nil {
			return err
		}
	}
	return nil
}

// WriteFooter outputs the footer to all Writers, stopping on the first error.
func (m *MultiWriter) WriteFooter(footer *model.Footer) error {
	for _, w := range m.writers {
		if err := w.WriteFooter(footer); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every Writer, even if some fail, and joins their errors.
func (m *MultiWriter) Close() error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// collector accumulates the pieces of a report for writers that emit the
// whole document at once.
type collector struct {
	report *model.Report
}

// WriteHeader starts a new report.
func (c *collector) WriteHeader(header *model.Header) error {
	c.report = model.NewReport(*header)
	return nil
}

// WriteSection appends a copy of section.
func (c *collector) WriteSection(section *model.Section) error {
	if c.report == nil {
		return ErrHeaderNotWritten
	}
	c.report.Sections = append(c.report.Sections, *section)
	return nil
}

// WriteFooter records a copy of footer.
func (c *collector) WriteFooter(footer *model.Footer) error {
	if c.report == nil {
		return ErrHeaderNotWritten
	}
	f := *footer
	c.report.Footer = &f
	return nil
}

// take returns the collected report and resets the collector.
// It returns nil if no header was written.
func (c *collector) take() *model.Report {
	r := c.report
	c.report = nil
	return r
}

// formatOptions renders options as sorted "key=value" pairs.
func formatOptions(options map[string]any) string {
	parts := make([]string, 0, len(options))
	for _, k := range slices.Sorted(maps.Keys(options)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, options[k]))
	}
	return strings.Join(parts, " ")
}
