package convert

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Byte order names accepted by ParseByteOrder.
const (
	LittleEndian = "little"
	BigEndian    = "big"
)

// HexToDec parses a hex string without "0x" prefix into an unsigned integer.
// Upper and lower case digits are accepted. Surrounding or embedded
// whitespace is not: the input must be digits only.
func HexToDec(hex string) (uint64, error) {
	if hex == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidHex)
	}

	n, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrHexOverflow, hex)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return n, nil
}

// ToLittleEndian reverses the byte-pair order of a hex string.
//
// The input may separate pairs with whitespace ("41 42 43") or be compact
// ("414243"). The result always separates pairs with a single space and
// keeps the case of the digits, so applying ToLittleEndian twice to a
// space-separated string returns the original string.
//
// Inputs that do not consist of whole bytes are rejected with
// ErrOddHexLength rather than padded.
func ToLittleEndian(hex string) (string, error) {
	digits, err := hexDigits(hex)
	if err != nil {
		return "", err
	}

	pairs := make([]string, 0, len(digits)/2)
	for i := len(digits); i > 0; i -= 2 {
		pairs = append(pairs, digits[i-2:i])
	}
	return strings.Join(pairs, " "), nil
}

// DecodeHex parses a hex string into bytes. Pairs may be separated by
// whitespace as in ToLittleEndian.
func DecodeHex(s string) ([]byte, error) {
	digits, err := hexDigits(s)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(digits)
}

// hexDigits strips whitespace from s and checks that the rest is a whole
// number of hex byte pairs.
func hexDigits(s string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	for _, r := range digits {
		if !isHexDigit(r) {
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidHex, r)
		}
	}
	if len(digits)%2 != 0 {
		return "", fmt.Errorf("%w: %d digits", ErrOddHexLength, len(digits))
	}
	return digits, nil
}

// EncodeHex renders b as space separated two-digit hex pairs.
func EncodeHex(b []byte, upper bool) string {
	if len(b) == 0 {
		return ""
	}

	format := "%02x"
	if upper {
		format = "%02X"
	}

	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, format, c)
	}
	return sb.String()
}

// Reverse returns a reversed copy of b. The argument is not modified.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// ParseByteOrder maps "little" or "big" (case-insensitive) to a binary.ByteOrder.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case LittleEndian:
		return binary.LittleEndian, nil
	case BigEndian:
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidByteOrder, name)
	}
}

// Uint reads an unsigned integer from a 1, 2, 4 or 8 byte group.
func Uint(b []byte, order binary.ByteOrder) (uint64, error) {
	switch len(b) {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(order.Uint16(b)), nil
	case 4:
		return uint64(order.Uint32(b)), nil
	case 8:
		return order.Uint64(b), nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, len(b))
	}
}

// isHexDigit reports whether r is in [0-9a-fA-F].
func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
