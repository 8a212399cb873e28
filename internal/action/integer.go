package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/byteprobe/internal/convert"
)

// Integer option names. The endianess option is shared with Timestamp.
const (
	OptType = "type"
	OptBase = "base"
)

// Integer bases.
const (
	BaseDec = "dec"
	BaseHex = "hex"
)

// integerType describes one integer width.
type integerType struct {
	size   int
	signed bool
}

var integerTypes = map[string]integerType{
	"u8":  {size: 1},
	"u16": {size: 2},
	"u32": {size: 4},
	"u64": {size: 8},
	"i8":  {size: 1, signed: true},
	"i16": {size: 2, signed: true},
	"i32": {size: 4, signed: true},
	"i64": {size: 8, signed: true},
}

// Integer decodes fixed-size integer groups.
type Integer struct {
	base
}

// NewInteger creates an Integer with its default options.
func NewInteger() *Integer {
	return &Integer{base: base{
		kind:        KindInteger,
		description: "Signed and unsigned integers of 1 to 8 bytes",
		defaults: Config{
			OptType:      "u32",
			OptEndianess: convert.LittleEndian,
			OptBase:      BaseDec,
		},
	}}
}

// Process implements Action.
func (n *Integer) Process(override Config, data []byte) (string, error) {
	cfg, err := n.config(override)
	if err != nil {
		return "", err
	}

	name := strings.ToLower(cfg.String(OptType))
	typ, ok := integerTypes[name]
	if !ok {
		return "", n.invalidOption(OptType, cfg.String(OptType), "u8, u16, u32, u64, i8, i16, i32 or i64")
	}
	order, err := byteOrder(&n.base, cfg)
	if err != nil {
		return "", err
	}
	numBase := strings.ToLower(cfg.String(OptBase))
	if numBase != BaseDec && numBase != BaseHex {
		return "", n.invalidOption(OptBase, cfg.String(OptBase), "dec or hex")
	}

	title := fmt.Sprintf("Decoded (%s, %s endian)", name, cfg.String(OptEndianess))
	return renderGroups(data, typ.size, title, func(group []byte) string {
		v, err := convert.Uint(group, order)
		if err != nil {
			return err.Error()
		}
		return formatInteger(v, typ, numBase)
	}), nil
}

// formatInteger renders v. Hex output always shows the raw bits.
func formatInteger(v uint64, typ integerType, numBase string) string {
	if numBase == BaseHex {
		return fmt.Sprintf("0x%0*X", typ.size*2, v)
	}
	if typ.signed {
		shift := 64 - uint(typ.size)*8
		return strconv.FormatInt(int64(v<<shift)>>shift, 10)
	}
	return strconv.FormatUint(v, 10)
}
