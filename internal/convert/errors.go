package convert

import "errors"

// Conversion errors.
// Callers use errors.Is to distinguish malformed input from overflow.
var (
	// ErrInvalidHex is returned when a hex string is empty, carries a "0x"
	// prefix or contains a character that is not a hex digit.
	ErrInvalidHex = errors.New("invalid hex string")

	// ErrHexOverflow is returned when a hex string does not fit in 64 bits.
	ErrHexOverflow = errors.New("hex value overflows 64 bits")

	// ErrOddHexLength is returned when a hex string does not consist of whole
	// bytes (its digit count is not a multiple of two).
	ErrOddHexLength = errors.New("hex string length is not a multiple of 2")

	// ErrInvalidByteOrder is returned for an endianness name other than
	// "little" or "big".
	ErrInvalidByteOrder = errors.New("invalid byte order: must be little or big")

	// ErrInvalidWidth is returned when an integer group is not 1, 2, 4 or 8 bytes.
	ErrInvalidWidth = errors.New("invalid integer width: must be 1, 2, 4 or 8 bytes")
)
