package action

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	xunicode "golang.org/x/text/encoding/unicode"
)

// Strings option names.
const (
	OptMinLength = "minLength"
	OptEncoding  = "encoding"
)

// String encodings.
const (
	EncodingASCII   = "ascii"
	EncodingUTF8    = "utf8"
	EncodingUTF16LE = "utf16le"
	EncodingUTF16BE = "utf16be"
)

// Strings extracts runs of printable characters.
type Strings struct {
	base
}

// NewStrings creates a Strings with its default options.
func NewStrings() *Strings {
	return &Strings{base: base{
		kind:        KindStrings,
		description: "Printable strings in ASCII, UTF-8 or UTF-16",
		defaults: Config{
			OptMinLength: 4,
			OptEncoding:  EncodingASCII,
		},
	}}
}

// decodedRune is a character together with the input offset it starts at.
type decodedRune struct {
	r   rune
	off int
}

// Process implements Action.
func (s *Strings) Process(override Config, data []byte) (string, error) {
	cfg, err := s.config(override)
	if err != nil {
		return "", err
	}

	minLen := cfg.Int(OptMinLength)
	if minLen < 1 {
		return "", s.invalidOption(OptMinLength, minLen, "a positive length")
	}

	encoding := strings.ToLower(cfg.String(OptEncoding))
	var runes []decodedRune
	switch encoding {
	case EncodingASCII:
		runes = decodeASCII(data)
	case EncodingUTF8:
		runes = decodeUTF8(data)
	case EncodingUTF16LE:
		runes = decodeUTF16(data, xunicode.LittleEndian)
	case EncodingUTF16BE:
		runes = decodeUTF16(data, xunicode.BigEndian)
	default:
		return "", s.invalidOption(OptEncoding, cfg.String(OptEncoding), "ascii, utf8, utf16le or utf16be")
	}

	t := newTable(offsetWidth, valueWidth)
	t.row("Offset", fmt.Sprintf("String (%s, min %d)", encoding, minLen))
	t.separator()
	for _, run := range printableRuns(runes, minLen) {
		t.row(formatOffset(run[0].off, true), runString(run))
	}
	t.separator()
	return t.String(), nil
}

// printableRuns returns the maximal runs of printable runes that are at
// least minLen characters long.
func printableRuns(runes []decodedRune, minLen int) [][]decodedRune {
	var runs [][]decodedRune
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minLen {
			runs = append(runs, runes[start:end])
		}
		start = -1
	}

	for i, dr := range runes {
		if isPrintableRune(dr.r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))
	return runs
}

func isPrintableRune(r rune) bool {
	return r == '\t' || (r != utf8.RuneError && unicode.IsPrint(r))
}

func runString(run []decodedRune) string {
	var sb strings.Builder
	for _, dr := range run {
		sb.WriteRune(dr.r)
	}
	return sb.String()
}

// decodeASCII maps bytes 0x20-0x7E and tab to characters and everything
// else to utf8.RuneError.
func decodeASCII(data []byte) []decodedRune {
	runes := make([]decodedRune, len(data))
	for i, c := range data {
		r := utf8.RuneError
		if c == '\t' || (c >= 0x20 && c <= 0x7e) {
			r = rune(c)
		}
		runes[i] = decodedRune{r: r, off: i}
	}
	return runes
}

func decodeUTF8(data []byte) []decodedRune {
	runes := make([]decodedRune, 0, len(data))
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		runes = append(runes, decodedRune{r: r, off: off})
		off += size
	}
	return runes
}

// decodeUTF16 decodes data with x/text and recovers each rune's offset from
// its width: supplementary characters take four bytes, a dangling final
// byte takes one, everything else two. Byte order marks are kept as
// characters so they break runs instead of shifting offsets.
func decodeUTF16(data []byte, endianness xunicode.Endianness) []decodedRune {
	decoded, err := xunicode.UTF16(endianness, xunicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return nil
	}

	runes := make([]decodedRune, 0, len(decoded)/2)
	off := 0
	for _, r := range string(decoded) {
		if off >= len(data) {
			break
		}
		runes = append(runes, decodedRune{r: r, off: off})
		switch {
		case r > 0xffff:
			off += 4
		case off+1 == len(data):
			off++
		default:
			off += 2
		}
	}
	return runes
}
