// Package report renders byteprobe reports.
//
// This package contains writers for the supported output formats:
//   - TextWriter: the fixed-format banner, sections and footer for terminals
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with a byte-class chart for sharing
//
// Design decision: a Writer receives the report piece by piece (header,
// sections, footer) as the controller produces them, instead of a finished
// report. The text format streams, so a long-running action leaves the
// earlier sections on screen and an aborted run shows exactly how far it
// got. Formats that need the whole document (JSON, Markdown) collect the
// pieces and emit them on Close.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-destination output.
package report
