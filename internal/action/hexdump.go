package action

import (
	"strings"
	"unicode/utf8"

	"github.com/nao1215/byteprobe/internal/convert"
)

// Hexdump option names.
const (
	OptNonASCIIPlaceholder = "nonAsciiPlaceholder"
	OptUppercase           = "uppercase"
	OptStartOffset         = "startOffset"
)

const (
	bytesPerRow = 16

	// hexWidth holds 16 two-digit pairs separated by single spaces.
	hexWidth = bytesPerRow*3 - 1
)

// Hexdump renders data 16 bytes per row with offset, hex and ASCII columns.
//
//	Offset    00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F  ASCII
//	--------  -----------------------------------------------  ----------------
//	00000000  48 65 6C 6C 6F 0A                                Hello.
//	--------  -----------------------------------------------  ----------------
type Hexdump struct {
	base
}

// NewHexdump creates a Hexdump with its default options.
func NewHexdump() *Hexdump {
	return &Hexdump{base: base{
		kind:        KindHexdump,
		description: "Hex and ASCII dump, 16 bytes per row",
		defaults: Config{
			OptNonASCIIPlaceholder: ".",
			OptUppercase:           true,
			OptStartOffset:         0,
		},
	}}
}

// Process implements Action.
func (h *Hexdump) Process(override Config, data []byte) (string, error) {
	cfg, err := h.config(override)
	if err != nil {
		return "", err
	}

	placeholder := cfg.String(OptNonASCIIPlaceholder)
	if utf8.RuneCountInString(placeholder) != 1 {
		return "", h.invalidOption(OptNonASCIIPlaceholder, placeholder, "a single character")
	}
	start := cfg.Int(OptStartOffset)
	if start < 0 {
		return "", h.invalidOption(OptStartOffset, start, "a non-negative offset")
	}
	upper := cfg.Bool(OptUppercase)

	t := newTable(offsetWidth, hexWidth, bytesPerRow)
	t.row("Offset", columnHeader(upper), "ASCII")
	t.separator()
	for off := 0; off < len(data); off += bytesPerRow {
		row := data[off:min(off+bytesPerRow, len(data))]
		t.row(formatOffset(start+off, upper), convert.EncodeHex(row, upper), printable(row, placeholder))
	}
	t.separator()

	return t.String(), nil
}

// columnHeader returns "00 01 ... 0F".
func columnHeader(upper bool) string {
	cols := make([]byte, bytesPerRow)
	for i := range cols {
		cols[i] = byte(i)
	}
	return convert.EncodeHex(cols, upper)
}

// printable maps bytes outside 0x20-0x7E to placeholder.
func printable(b []byte, placeholder string) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 0x20 && c <= 0x7e {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(placeholder)
	}
	return sb.String()
}
