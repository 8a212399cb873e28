package model

import (
	"testing"
	"time"
)

func TestReportAddSection(t *testing.T) {
	t.Parallel()

	r := NewReport(Header{Tool: "byteprobe", Path: "sample.bin"})

	first := r.AddSection(Section{Action: "hexdump"})
	second := r.AddSection(Section{Action: "timestamp"})

	if first.Index != 1 || second.Index != 2 {
		t.Errorf("unexpected indexes %d, %d", first.Index, second.Index)
	}

	names := r.ActionNames()
	if len(names) != 2 || names[0] != "hexdump" || names[1] != "timestamp" {
		t.Errorf("unexpected action names %v", names)
	}
}

func TestReportComplete(t *testing.T) {
	t.Parallel()

	r := NewReport(Header{})
	if r.Complete() {
		t.Error("new report should not be complete")
	}

	r.Footer = &Footer{Elapsed: time.Millisecond}
	if !r.Complete() {
		t.Error("report with footer should be complete")
	}
}

func TestHeaderHashValue(t *testing.T) {
	t.Parallel()

	h := Header{Hashes: []Hash{
		{Algorithm: "md5", Value: "aa"},
		{Algorithm: "sha256", Value: "bb"},
	}}

	if got := h.HashValue("sha256"); got != "bb" {
		t.Errorf("got %q, want bb", got)
	}
	if got := h.HashValue("sha1"); got != "" {
		t.Errorf("expected empty value for missing algorithm, got %q", got)
	}
}
