package model

import (
	"time"
)

// Report is the complete result of running a sequence of actions over one
// input. It mirrors the order of the text report: header, one section per
// action invocation, then the footer.
//
// Design decision: the report keeps every action's rendered text rather than
// structured values. Actions are free-form renderers, and keeping the text
// lets stored reports be replayed byte-for-byte in any output format.
type Report struct {
	// Header describes the input and the invocation.
	Header Header `json:"header"`

	// Sections holds the output of each action in execution order.
	Sections []Section `json:"sections"`

	// Footer holds timing information. It is nil while the run is in
	// progress and when an action aborted the run.
	Footer *Footer `json:"footer,omitempty"`
}

// NewReport creates a Report for the given header.
func NewReport(header Header) *Report {
	return &Report{
		Header:   header,
		Sections: make([]Section, 0),
	}
}

// AddSection appends a section, numbering it after the existing ones.
func (r *Report) AddSection(s Section) Section {
	s.Index = len(r.Sections) + 1
	r.Sections = append(r.Sections, s)
	return s
}

// Complete reports whether every action ran and the footer was written.
func (r *Report) Complete() bool {
	return r.Footer != nil
}

// ActionNames returns the action names of all sections in order.
func (r *Report) ActionNames() []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Action
	}
	return names
}

// Header is the banner information printed before any action output.
type Header struct {
	// Tool is the program name.
	Tool string `json:"tool"`

	// Version is the program version.
	Version string `json:"version"`

	// Args is the command line the report was produced with.
	Args []string `json:"args"`

	// Path is the input file path, or "-" for standard input.
	Path string `json:"path"`

	// Size is the number of bytes interpreted (after windowing).
	Size int `json:"size"`

	// Offset is the position of the first interpreted byte in the input.
	Offset int64 `json:"offset"`

	// Stats holds byte-class counts of the interpreted bytes.
	Stats ByteStats `json:"stats"`

	// Hashes holds digests of the interpreted bytes in configured order.
	Hashes []Hash `json:"hashes"`

	// Timestamp is when the run started.
	Timestamp time.Time `json:"timestamp"`
}

// HashValue returns the hex digest for the given algorithm, or "" if it was
// not computed.
func (h Header) HashValue(algorithm string) string {
	for _, hash := range h.Hashes {
		if hash.Algorithm == algorithm {
			return hash.Value
		}
	}
	return ""
}

// Hash is a named digest.
type Hash struct {
	// Algorithm is the digest name, e.g. "sha256".
	Algorithm string `json:"algorithm"`

	// Value is the lower-case hex digest.
	Value string `json:"value"`
}

// Section is the output of one action invocation.
type Section struct {
	// Index is the 1-based position of the section in the report.
	Index int `json:"index"`

	// Action is the action kind, e.g. "hexdump".
	Action string `json:"action"`

	// Options is the merged configuration the action ran with.
	Options map[string]any `json:"options"`

	// Output is the rendered text.
	Output string `json:"output"`
}

// Footer closes a report.
type Footer struct {
	// Elapsed is the wall-clock time since the controller was created.
	Elapsed time.Duration `json:"elapsed"`

	// FinishedAt is when the last action completed.
	FinishedAt time.Time `json:"finished_at"`
}
