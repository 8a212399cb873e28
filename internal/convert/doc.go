// Package convert provides the stateless numeric and encoding helpers used by
// byteprobe actions.
//
// The helpers operate on hex strings and raw byte groups:
//   - HexToDec parses an unprefixed hex string into an unsigned integer
//   - ToLittleEndian reverses the byte-pair order of a hex string
//   - EncodeHex, Reverse and Uint work directly on byte slices
//
// None of the functions keep state or modify their arguments.
package convert
