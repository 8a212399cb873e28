// Package action provides byteprobe's byte interpretation units.
//
// An Action turns a byte slice into a self-contained block of text. Each
// action declares its options and their default values at construction;
// a call to Process merges a per-call override onto those defaults. Keys the
// action does not declare are ignored, and values are coerced to the type of
// the default so that options coming from YAML, JSON or the command line all
// behave the same.
//
// The set of actions is closed and selected by Kind:
//
//	hexdump    16 bytes per row with offset, hex and ASCII columns
//	timestamp  Win32 FILETIME, Unix and DOS timestamps
//	integer    signed and unsigned integers of 1 to 8 bytes
//	strings    printable strings in ASCII, UTF-8 or UTF-16
//	guid       Windows GUIDs and RFC 4122 UUIDs
//	cbor       CBOR items in diagnostic notation
//	exif       EXIF tags of JPEG, TIFF and HEIC data
//	patterns   e-mail, URL, onion, wallet and credential patterns
//
// Actions never modify the data they are given, and for malformed or short
// input they return a best-effort rendering rather than an error. Errors are
// reserved for invalid options.
package action
