package wire

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText decodes a text field using the format's historical dual
// encoding: try UTF-8 first, and on failure fall back to Windows-1252
// (CP1252), the original authoring encoding for this format. The
// fallback is silent by contract: valid UTF-8 is a strict
// superset of 7-bit ASCII, so the fallback only ever triggers on bytes
// that were never valid UTF-8 to begin with, not on ambiguous input.
//
// Trailing null bytes, present in every fixed-length text field on disk,
// are stripped before decoding.
func DecodeText(raw []byte) string {
	trimmed := bytes.TrimRight(raw, "\x00")
	if len(trimmed) == 0 {
		return ""
	}

	if utf8.Valid(trimmed) {
		return string(trimmed)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(trimmed)
	if err != nil {
		// Windows1252 maps every byte value, so this path is not
		// reachable for well-formed input; fall back to a lossy
		// conversion rather than fail a lenient decode over it.
		return string(trimmed)
	}

	return string(decoded)
}

// EncodeText encodes text for the wire in UTF-8, as the writer side of
// DecodeText's contract: the codec always emits UTF-8, never CP1252.
func EncodeText(s string) []byte {
	return []byte(s)
}
