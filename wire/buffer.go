// Package wire implements the byte-level read/write primitives the
// codec layer is built from: peek-at-offset (non-consuming length
// reads), take (consuming splits into owned slices), and put
// (length-checked appends). All integer I/O is big-endian.
package wire

// Buffer is a growable byte accumulator with a consuming read cursor.
// It is the scratch buffer a handshake driver owns exclusively for the
// duration of one handshake (spec: "Ownership"): bytes read off a
// stream are appended with Append, then Take* calls consume only whole
// fields, leaving any trailing partial field untouched for the next
// Append.
type Buffer struct {
	data []byte
}

// NewBuffer wraps an existing byte slice as a Buffer's initial content.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Append adds p to the buffer's unconsumed tail.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Len reports the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the unconsumed bytes. The caller must not retain or
// mutate the slice past the next Take*/Append call.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset clears the buffer for reuse, matching the task-local scratch
// buffer discipline described in spec §5 ("cleared after each write,
// never shared").
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// advance drops the first n bytes from the unconsumed region.
func (b *Buffer) advance(n int) {
	b.data = b.data[n:]
}
