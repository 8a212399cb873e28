package action

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OptLayout is the guid layout option.
const OptLayout = "layout"

// GUID layouts.
const (
	// LayoutMixed is the Windows layout: the first three fields are little
	// endian and the last eight bytes are stored as is.
	LayoutMixed = "mixed"

	// LayoutRFC4122 stores all fields big endian.
	LayoutRFC4122 = "rfc4122"
)

const guidSize = 16

// GUID decodes 16-byte GUID and UUID groups.
type GUID struct {
	base
}

// NewGUID creates a GUID with its default options.
func NewGUID() *GUID {
	return &GUID{base: base{
		kind:        KindGUID,
		description: "Windows GUIDs and RFC 4122 UUIDs",
		defaults: Config{
			OptLayout: LayoutMixed,
		},
	}}
}

// Process implements Action.
func (g *GUID) Process(override Config, data []byte) (string, error) {
	cfg, err := g.config(override)
	if err != nil {
		return "", err
	}

	layout := strings.ToLower(cfg.String(OptLayout))
	if layout != LayoutMixed && layout != LayoutRFC4122 {
		return "", g.invalidOption(OptLayout, cfg.String(OptLayout), "mixed or rfc4122")
	}

	return renderGroups(data, guidSize, fmt.Sprintf("Decoded (%s)", layout), func(group []byte) string {
		return formatGUID(group, layout)
	}), nil
}

// formatGUID renders one 16-byte group.
func formatGUID(group []byte, layout string) string {
	b := make([]byte, guidSize)
	copy(b, group)
	if layout == LayoutMixed {
		b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
		b[4], b[5] = b[5], b[4]
		b[6], b[7] = b[7], b[6]
	}

	u, err := uuid.FromBytes(b)
	if err != nil {
		return err.Error()
	}

	if layout == LayoutMixed {
		return fmt.Sprintf("{%s} (version %d, %s)", strings.ToUpper(u.String()), int(u.Version()), u.Variant())
	}
	return fmt.Sprintf("%s (version %d, %s)", u.String(), int(u.Version()), u.Variant())
}
