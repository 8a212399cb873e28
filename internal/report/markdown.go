package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/byteprobe/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables and code blocks
// 3. Mermaid charts and GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
	collector

	// title turns action names into section titles.
	title cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
}

// Close writes the collected report.
func (w *MarkdownWriter) Close() error {
	report := w.take()
	if report == nil {
		return nil
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, &report.Header)
	for i := range report.Sections {
		w.writeSection(md, &report.Sections[i])
	}
	w.writeFooter(md, report)

	return md.Build()
}

// writeHeader writes the title, the property table and the byte-class chart.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, header *model.Header) {
	md.H1(header.Tool + " report")
	md.PlainText("")

	rows := [][]string{
		{"Version", header.Version},
		{"Arguments", "`" + strings.Join(header.Args, " ") + "`"},
		{"File", "`" + header.Path + "`"},
		{"Offset", strconv.FormatInt(header.Offset, 10)},
		{"Size", fmt.Sprintf("%s (%d bytes)", humanize.Bytes(uint64(header.Size)), header.Size)},
	}
	for _, h := range header.Hashes {
		rows = append(rows, []string{strings.ToUpper(h.Algorithm), "`" + h.Value + "`"})
	}
	rows = append(rows, []string{"Timestamp", header.Timestamp.Format(timestampLayout)})

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if header.Stats.Total() > 0 {
		w.writePieChart(md, header.Stats)
	}
}

// writePieChart writes a mermaid pie chart of the byte classes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, stats model.ByteStats) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Byte Classes"),
		piechart.WithShowData(true),
	)

	if stats.Printable > 0 {
		chart.LabelAndIntValue("Printable", uint64(stats.Printable))
	}
	if stats.Null > 0 {
		chart.LabelAndIntValue("Null", uint64(stats.Null))
	}
	if stats.Control > 0 {
		chart.LabelAndIntValue("Control", uint64(stats.Control))
	}
	if stats.High > 0 {
		chart.LabelAndIntValue("High", uint64(stats.High))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSection writes one action's heading, options and output.
func (w *MarkdownWriter) writeSection(md *markdown.Markdown, section *model.Section) {
	md.H2(fmt.Sprintf("%d. %s", section.Index, w.title.String(section.Action)))
	md.PlainText("")
	if opts := formatOptions(section.Options); opts != "" {
		md.PlainText("Options: `" + opts + "`")
		md.PlainText("")
	}
	md.CodeBlocks(markdown.SyntaxHighlightText, section.Output)
	md.PlainText("")
}

// writeFooter writes the execution time, or a warning for an aborted run.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.Report) {
	md.HorizontalRule()
	md.PlainText("")

	if report.Footer == nil {
		md.Warningf("Report is incomplete: the run stopped after %d section(s).", len(report.Sections))
		md.PlainText("")
		return
	}
	md.PlainTextf("*Execution time: %s*", report.Footer.Elapsed.Round(time.Microsecond))
}
