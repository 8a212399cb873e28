package action

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/nao1215/byteprobe/internal/convert"
)

// Timestamp option names.
const (
	OptFormat    = "format"
	OptEndianess = "endianess"
	OptTimezone  = "timezone"
)

// Timestamp formats.
const (
	FormatWin32  = "win32"
	FormatUnix32 = "unix32"
	FormatUnix64 = "unix64"
	FormatUnixMs = "unixms"
	FormatDOS    = "dos"
)

const (
	// filetimeTicksPerSecond is the FILETIME resolution of 100ns.
	filetimeTicksPerSecond = 10_000_000

	// filetimeEpochDelta is the number of seconds between 1601-01-01 and
	// 1970-01-01.
	filetimeEpochDelta = 11_644_473_600

	// dosEpochYear is the year encoded as 0 in a DOS date.
	dosEpochYear = 1980

	// minUnixSeconds and maxUnixSeconds bound years 0001 to 9999.
	minUnixSeconds = -62_135_596_800
	maxUnixSeconds = 253_402_300_799
)

// outOfRange is the note for values outside years 0001 to 9999.
const outOfRange = "out of range"

// timestampFormat describes one supported encoding.
type timestampFormat struct {
	size   int
	layout string
	decode func(v uint64, loc *time.Location) (time.Time, string)
}

// timestampFormats maps format names to decoders. A decoder returns either a
// time or a note explaining why the value has none.
var timestampFormats = map[string]timestampFormat{
	FormatWin32: {
		size:   8,
		layout: "2006-01-02 15:04:05.0000000 MST",
		decode: func(v uint64, _ *time.Location) (time.Time, string) {
			if v == 0 {
				return time.Time{}, "not set"
			}
			secs := int64(v/filetimeTicksPerSecond) - filetimeEpochDelta
			nsec := int64(v%filetimeTicksPerSecond) * 100
			return time.Unix(secs, nsec), ""
		},
	},
	FormatUnix32: {
		size:   4,
		layout: "2006-01-02 15:04:05 MST",
		decode: func(v uint64, _ *time.Location) (time.Time, string) {
			return time.Unix(int64(int32(uint32(v))), 0), ""
		},
	},
	FormatUnix64: {
		size:   8,
		layout: "2006-01-02 15:04:05 MST",
		decode: func(v uint64, _ *time.Location) (time.Time, string) {
			secs := int64(v)
			if secs < minUnixSeconds || secs > maxUnixSeconds {
				return time.Time{}, outOfRange
			}
			return time.Unix(secs, 0), ""
		},
	},
	FormatUnixMs: {
		size:   8,
		layout: "2006-01-02 15:04:05.000 MST",
		decode: func(v uint64, _ *time.Location) (time.Time, string) {
			ms := int64(v)
			if ms/1000 < minUnixSeconds || ms/1000 > maxUnixSeconds {
				return time.Time{}, outOfRange
			}
			return time.UnixMilli(ms), ""
		},
	},
	FormatDOS: {
		size:   4,
		layout: "2006-01-02 15:04:05 MST",
		decode: decodeDOS,
	},
}

// decodeDOS decodes a FAT timestamp whose low 16 bits hold the time and high
// 16 bits the date. DOS timestamps carry no zone and are read in loc.
func decodeDOS(v uint64, loc *time.Location) (time.Time, string) {
	tm, dt := uint16(v), uint16(v>>16)
	year := int(dt>>9) + dosEpochYear
	month := time.Month((dt >> 5) & 0x0f)
	day := int(dt & 0x1f)
	hour := int(tm >> 11)
	minute := int((tm >> 5) & 0x3f)
	sec := int(tm&0x1f) * 2

	t := time.Date(year, month, day, hour, minute, sec, 0, loc)
	if t.Month() != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute {
		return time.Time{}, "invalid DOS date"
	}
	return t, ""
}

// Timestamp decodes fixed-size timestamp groups.
type Timestamp struct {
	base
}

// NewTimestamp creates a Timestamp with its default options.
func NewTimestamp() *Timestamp {
	return &Timestamp{base: base{
		kind:        KindTimestamp,
		description: "Win32 FILETIME, Unix and DOS timestamps",
		defaults: Config{
			OptFormat:    FormatWin32,
			OptEndianess: convert.LittleEndian,
			OptTimezone:  "UTC",
		},
	}}
}

// Process implements Action.
func (ts *Timestamp) Process(override Config, data []byte) (string, error) {
	cfg, err := ts.config(override)
	if err != nil {
		return "", err
	}

	name := strings.ToLower(cfg.String(OptFormat))
	format, ok := timestampFormats[name]
	if !ok {
		return "", ts.invalidOption(OptFormat, cfg.String(OptFormat), "win32, unix32, unix64, unixms or dos")
	}
	order, err := byteOrder(&ts.base, cfg)
	if err != nil {
		return "", err
	}
	loc, err := time.LoadLocation(cfg.String(OptTimezone))
	if err != nil {
		return "", ts.invalidOption(OptTimezone, cfg.String(OptTimezone), "an IANA time zone name")
	}

	title := fmt.Sprintf("Decoded (%s, %s endian)", name, cfg.String(OptEndianess))
	return renderGroups(data, format.size, title, func(group []byte) string {
		v, err := convert.Uint(group, order)
		if err != nil {
			return err.Error()
		}
		t, note := format.decode(v, loc)
		if note != "" {
			return note
		}
		if t.Year() < 1 || t.Year() > 9999 {
			return outOfRange
		}
		return t.In(loc).Format(format.layout)
	}), nil
}

// byteOrder reads the endianess option.
func byteOrder(b *base, cfg Config) (binary.ByteOrder, error) {
	order, err := convert.ParseByteOrder(cfg.String(OptEndianess))
	if err != nil {
		return nil, b.invalidOption(OptEndianess, cfg.String(OptEndianess), "little or big")
	}
	return order, nil
}
