package wire

import "encoding/binary"

const initialCapacity = 8

// Writer appends little-endian fields to a growable buffer.
type Writer struct {
	buf    []byte
	offset int
}

// NewWriter returns a writer with a small initial backing buffer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, initialCapacity)}
}

// ensure grows the backing buffer so that need more bytes fit. The new
// capacity is the larger of double the current one and the exact fit.
func (w *Writer) ensure(need int) {
	if w.offset+need <= len(w.buf) {
		return
	}
	size := len(w.buf) * 2
	if fit := w.offset + need; fit > size {
		size = fit
	}
	grown := make([]byte, size)
	copy(grown, w.buf[:w.offset])
	w.buf = grown
}

// WriteInt8 appends one signed byte.
func (w *Writer) WriteInt8(n int8) {
	w.ensure(1)
	w.buf[w.offset] = byte(n)
	w.offset++
}

// WriteInt16 appends a signed little-endian 16-bit value.
func (w *Writer) WriteInt16(n int16) {
	w.WriteUint16(uint16(n))
}

// WriteUint16 appends an unsigned little-endian 16-bit value.
func (w *Writer) WriteUint16(n uint16) {
	w.ensure(2)
	binary.LittleEndian.PutUint16(w.buf[w.offset:], n)
	w.offset += 2
}

// WriteASCII appends text followed by a 0x00 terminator. Bytes outside the
// printable range (and newline) are written as '?'.
func (w *Writer) WriteASCII(text string) {
	w.ensure(len(text) + 1)
	for i := 0; i < len(text); i++ {
		w.buf[w.offset] = CleanASCII(text[i])
		w.offset++
	}
	w.buf[w.offset] = 0
	w.offset++
}

// WriteURI percent-encodes text and appends it as an ascii field.
func (w *Writer) WriteURI(text string) {
	w.WriteASCII(EscapeURIComponent(text))
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	return w.offset
}

// Bytes returns exactly the bytes written, without spare capacity.
func (w *Writer) Bytes() []byte {
	out := make([]byte, w.offset)
	copy(out, w.buf[:w.offset])
	return out
}
