package action

import (
	"errors"
	"fmt"

	exif "github.com/dsoprea/go-exif/v3"
)

// OptMaxValueLength is the exif value truncation option.
const OptMaxValueLength = "maxValueLength"

const noEXIF = "No EXIF data found"

// EXIF lists the EXIF tags found in the data.
//
// The data may be a whole JPEG, TIFF or HEIC file or a raw EXIF block; the
// EXIF header is searched for anywhere in the input.
type EXIF struct {
	base
}

// NewEXIF creates an EXIF with its default options.
func NewEXIF() *EXIF {
	return &EXIF{base: base{
		kind:        KindEXIF,
		description: "EXIF tags of JPEG, TIFF and HEIC data",
		defaults: Config{
			OptMaxValueLength: 64,
		},
	}}
}

// Process implements Action.
func (e *EXIF) Process(override Config, data []byte) (string, error) {
	cfg, err := e.config(override)
	if err != nil {
		return "", err
	}
	maxLen := cfg.Int(OptMaxValueLength)
	if maxLen < 1 {
		return "", e.invalidOption(OptMaxValueLength, maxLen, "a positive length")
	}

	t := newTable(12, 6, 28, valueWidth)
	t.row("IFD", "Tag", "Name", "Value")
	t.separator()

	tags, note := readEXIF(data)
	for _, tag := range tags {
		t.row(tag.IfdPath, fmt.Sprintf("0x%04X", tag.TagId), tag.TagName, truncate(tag.Formatted, maxLen))
	}
	if note != "" {
		t.row("", "", "", note)
	}

	t.separator()
	return t.String(), nil
}

// readEXIF extracts the flattened tag list. Problems are reported as a note
// rather than an error so that partial results are still shown.
func readEXIF(data []byte) (tags []exif.ExifTag, note string) {
	if len(data) == 0 {
		return nil, noEXIF
	}

	// go-exif reports some parse failures by panicking.
	defer func() {
		if r := recover(); r != nil {
			note = fmt.Sprintf("EXIF parse error: %v", r)
		}
	}()

	raw, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, noEXIF
		}
		return nil, fmt.Sprintf("EXIF parse error: %v", err)
	}

	tags, _, err = exif.GetFlatExifData(raw, nil)
	if err != nil {
		return tags, fmt.Sprintf("EXIF parse error: %v", err)
	}
	if len(tags) == 0 {
		return nil, "No EXIF tags found"
	}
	return tags, ""
}

// truncate shortens s to at most n characters, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
