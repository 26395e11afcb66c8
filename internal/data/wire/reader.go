package wire

import (
	"encoding/binary"
	"strings"
)

// Reader consumes fields from a fixed frame. Every read reports ok=false on
// underrun instead of panicking so decoders can stop on truncated input.
type Reader struct {
	buf    []byte
	offset int
}

// NewReader wraps a frame for reading.
func NewReader(frame []byte) *Reader {
	return &Reader{buf: frame}
}

func (r *Reader) has(n int) bool {
	return r.offset+n <= len(r.buf)
}

// Remaining reports how many bytes have not been consumed.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.offset
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, bool) {
	if !r.has(1) {
		return 0, false
	}
	v := int8(r.buf[r.offset])
	r.offset++
	return v, true
}

// ReadInt16 reads a signed little-endian 16-bit value.
func (r *Reader) ReadInt16() (int16, bool) {
	v, ok := r.ReadUint16()
	return int16(v), ok
}

// ReadUint16 reads an unsigned little-endian 16-bit value.
func (r *Reader) ReadUint16() (uint16, bool) {
	if !r.has(2) {
		return 0, false
	}
	v := binary.LittleEndian.Uint16(r.buf[r.offset:])
	r.offset += 2
	return v, true
}

// ReadASCII reads up to the next 0x00 terminator. A field without a
// terminator is absent. Unprintable bytes are returned as '?'.
func (r *Reader) ReadASCII() (string, bool) {
	var b strings.Builder
	for {
		next, ok := r.ReadInt8()
		if !ok {
			return "", false
		}
		if next == 0 {
			break
		}
		b.WriteByte(CleanASCII(byte(next)))
	}
	return b.String(), true
}

// ReadURI reads an ascii field and percent-decodes it. Malformed escapes
// make the field absent.
func (r *Reader) ReadURI() (string, bool) {
	raw, ok := r.ReadASCII()
	if !ok {
		return "", false
	}
	text, err := UnescapeURIComponent(raw)
	if err != nil {
		return "", false
	}
	return text, true
}
