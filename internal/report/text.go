package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/byteprobe/internal/model"
)

const (
	// lineWidth is the width of banner and section rules.
	lineWidth = 80

	// labelWidth aligns the banner values.
	labelWidth = 10

	timestampLayout = "2006-01-02 15:04:05 MST"
)

// TextWriter outputs the human-readable report.
//
//	================================================================================
//	byteprobe v1.0.0
//	================================================================================
//	Arguments : interpret -a hexdump sample.bin
//	File      : sample.bin
//	...
//	================================================================================
//
//	[1] Hexdump  nonAsciiPlaceholder=. startOffset=0 uppercase=true
//	--------------------------------------------------------------------------------
//	<action output>
//
//	================================================================================
//	Execution time: 1.234ms
//	================================================================================
//
// Design decision: every piece is written as soon as it arrives and nothing
// is buffered, so Close has nothing to do.
type TextWriter struct {
	baseWriter

	// title turns action names into section titles.
	title cases.Caser
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
}

// WriteHeader outputs the banner.
func (w *TextWriter) WriteHeader(header *model.Header) error {
	var sb strings.Builder

	rule := strings.Repeat("=", lineWidth)
	sb.WriteString(rule + "\n")
	fmt.Fprintf(&sb, "%s %s\n", header.Tool, header.Version)
	sb.WriteString(rule + "\n")

	writeField(&sb, "Arguments", strings.Join(header.Args, " "))
	writeField(&sb, "File", header.Path)
	writeField(&sb, "Offset", fmt.Sprintf("%d (0x%X)", header.Offset, header.Offset))
	writeField(&sb, "Size", fmt.Sprintf("%s (%d bytes)", humanize.Bytes(uint64(header.Size)), header.Size))
	writeField(&sb, "Bytes", fmt.Sprintf("null %d, printable %d, control %d, high %d",
		header.Stats.Null, header.Stats.Printable, header.Stats.Control, header.Stats.High))
	for _, h := range header.Hashes {
		writeField(&sb, strings.ToUpper(h.Algorithm), h.Value)
	}
	writeField(&sb, "Timestamp", header.Timestamp.Format(timestampLayout))
	sb.WriteString(rule + "\n")

	_, err := io.WriteString(w.output, sb.String())
	return err
}

// WriteSection outputs one action's title, options and output.
func (w *TextWriter) WriteSection(section *model.Section) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n[%d] %s", section.Index, w.title.String(section.Action))
	if opts := formatOptions(section.Options); opts != "" {
		sb.WriteString("  " + opts)
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	sb.WriteString(section.Output)
	if !strings.HasSuffix(section.Output, "\n") {
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w.output, sb.String())
	return err
}

// WriteFooter outputs the execution time.
func (w *TextWriter) WriteFooter(footer *model.Footer) error {
	rule := strings.Repeat("=", lineWidth)
	_, err := fmt.Fprintf(w.output, "\n%s\nExecution time: %s\n%s\n",
		rule, footer.Elapsed.Round(time.Microsecond), rule)
	return err
}

// Close implements Writer.
func (w *TextWriter) Close() error {
	return nil
}

// writeField writes one aligned "Label     : value" banner line.
func writeField(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "%-*s: %s\n", labelWidth, label, value)
}
