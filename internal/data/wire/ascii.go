// Package wire holds the byte-level primitives of the frame format: signed
// little-endian integers, zero-terminated ascii text and percent-encoded
// text. It knows nothing about opcodes or message semantics.
package wire

import (
	"net/url"
	"strings"
)

// Replacement is written in place of bytes that cannot travel as ascii.
const Replacement = '?'

// CleanASCII maps a byte onto the transmittable set: printable ascii and
// newline pass through, everything else becomes '?'.
func CleanASCII(c byte) byte {
	if c == '\n' || (c >= 0x20 && c <= 0x7e) {
		return c
	}
	return Replacement
}

// SanitizeASCII applies CleanASCII to every byte of text.
func SanitizeASCII(text string) string {
	out := []byte(text)
	for i := range out {
		out[i] = CleanASCII(out[i])
	}
	return string(out)
}

// EscapeURIComponent percent-encodes text the way browsers'
// encodeURIComponent does for the purposes of this protocol: the result is
// pure ascii and spaces are written as %20.
func EscapeURIComponent(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// UnescapeURIComponent reverses EscapeURIComponent. '+' is kept literally.
func UnescapeURIComponent(text string) (string, error) {
	return url.PathUnescape(text)
}
