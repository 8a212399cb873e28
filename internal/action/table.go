package action

import (
	"fmt"
	"strings"

	"github.com/nao1215/byteprobe/internal/convert"
)

const (
	// offsetWidth is the width of the offset column in every table.
	offsetWidth = 8

	// valueWidth is the separator width of free-form value columns.
	valueWidth = 32

	columnGap = "  "
)

// table renders fixed-width, left-aligned columns. The last column is never
// padded so that rows carry no trailing blanks.
type table struct {
	widths []int
	sb     strings.Builder
}

func newTable(widths ...int) *table {
	return &table{widths: widths}
}

// row writes one line. Cells beyond the declared columns are ignored.
func (t *table) row(cells ...string) {
	n := min(len(cells), len(t.widths))
	for i := range n {
		if i > 0 {
			t.sb.WriteString(columnGap)
		}
		if i == n-1 {
			t.sb.WriteString(cells[i])
			continue
		}
		fmt.Fprintf(&t.sb, "%-*s", t.widths[i], cells[i])
	}
	t.sb.WriteByte('\n')
}

// separator writes a dashed line matching the column widths.
func (t *table) separator() {
	for i, w := range t.widths {
		if i > 0 {
			t.sb.WriteString(columnGap)
		}
		t.sb.WriteString(strings.Repeat("-", w))
	}
	t.sb.WriteByte('\n')
}

// String returns the rendered table without the final newline.
func (t *table) String() string {
	return strings.TrimSuffix(t.sb.String(), "\n")
}

// formatOffset renders an offset as eight hex digits.
func formatOffset(off int, upper bool) string {
	if upper {
		return fmt.Sprintf("%08X", off)
	}
	return fmt.Sprintf("%08x", off)
}

// renderGroups splits data into groups of size bytes and renders one row per
// group with its offset, raw bytes and decoded value. A trailing group shorter
// than size is shown with its raw bytes and is never decoded.
func renderGroups(data []byte, size int, title string, decode func(group []byte) string) string {
	t := newTable(offsetWidth, max(size*3-1, len("Raw")), max(valueWidth, len(title)))
	t.row("Offset", "Raw", title)
	t.separator()

	for off := 0; off < len(data); off += size {
		group := data[off:min(off+size, len(data))]
		value := fmt.Sprintf("incomplete group: %d of %d bytes", len(group), size)
		if len(group) == size {
			value = decode(group)
		}
		t.row(formatOffset(off, true), convert.EncodeHex(group, true), value)
	}

	t.separator()
	return t.String()
}
