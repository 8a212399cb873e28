package action

import (
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// CBOR option names.
const (
	OptSequence    = "sequence"
	OptByteStrings = "byteStrings"
)

// Byte string renderings in diagnostic notation.
const (
	ByteStringsHex    = "hex"
	ByteStringsBase64 = "base64"
)

// CBOR renders CBOR items in RFC 8949 diagnostic notation.
//
// Design decision: items are decoded one at a time with DiagnoseFirst so
// that a malformed item still leaves the items before it in the output,
// followed by a row naming the offset where decoding stopped.
type CBOR struct {
	base
}

// NewCBOR creates a CBOR with its default options.
func NewCBOR() *CBOR {
	return &CBOR{base: base{
		kind:        KindCBOR,
		description: "CBOR items in diagnostic notation",
		defaults: Config{
			OptSequence:    true,
			OptByteStrings: ByteStringsHex,
		},
	}}
}

// Process implements Action.
func (c *CBOR) Process(override Config, data []byte) (string, error) {
	cfg, err := c.config(override)
	if err != nil {
		return "", err
	}

	opts := cbor.DiagOptions{}
	switch strings.ToLower(cfg.String(OptByteStrings)) {
	case ByteStringsHex:
		opts.ByteStringEncoding = cbor.ByteStringBase16Encoding
	case ByteStringsBase64:
		opts.ByteStringEncoding = cbor.ByteStringBase64Encoding
	default:
		return "", c.invalidOption(OptByteStrings, cfg.String(OptByteStrings), "hex or base64")
	}
	dm, err := opts.DiagMode()
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.kind, err)
	}

	t := newTable(offsetWidth, valueWidth)
	t.row("Offset", "Diagnostic notation")
	t.separator()

	rest := data
	for len(rest) > 0 {
		off := len(data) - len(rest)
		diag, next, err := dm.DiagnoseFirst(rest)
		if err != nil {
			t.row(formatOffset(off, true), "error: "+err.Error())
			break
		}
		t.row(formatOffset(off, true), diag)
		rest = next

		if !cfg.Bool(OptSequence) {
			if len(rest) > 0 {
				t.row(formatOffset(len(data)-len(rest), true), fmt.Sprintf("%d trailing bytes not decoded", len(rest)))
			}
			break
		}
	}

	t.separator()
	return t.String(), nil
}
