// Package secret implements the key-wrapping type spec §9 requires:
// something that zeroes its backing store once it's no longer needed
// and never prints its contents by accident. No corpus repo needed this
// (none of them hold long-lived symmetric secrets behind a shared key
// store the way this spec's nonce/key backend does), so it's written
// from spec §9's two required properties directly rather than grounded
// on an existing file; there is also no ecosystem memguard-style
// library anywhere in the retrieved pack to adopt instead.
package secret

import "runtime"

// redacted is printed in place of a Bytes' contents by String/GoString.
const redacted = "secret.Bytes{REDACTED}"

// Bytes wraps key material so it is never printed by %v/%s/%q and its
// backing array is zeroed once Close is called (or, as a backstop, when
// the Bytes value is garbage collected without an explicit Close).
type Bytes struct {
	data []byte
}

// New copies src into a new Bytes, taking ownership of the copy. The
// caller remains responsible for clearing src itself if it's sensitive.
func New(src []byte) *Bytes {
	b := &Bytes{data: make([]byte, len(src))}
	copy(b.data, src)
	runtime.SetFinalizer(b, func(b *Bytes) { b.Close() })
	return b
}

// Expose returns the wrapped bytes. The caller must not retain the
// slice past the next Close call.
func (b *Bytes) Expose() []byte {
	return b.data
}

// Len reports the number of wrapped bytes.
func (b *Bytes) Len() int {
	return len(b.data)
}

// Close zeroes the backing array. Close is idempotent and safe to call
// multiple times.
func (b *Bytes) Close() error {
	for i := range b.data {
		b.data[i] = 0
	}
	b.data = nil
	return nil
}

// String never reveals the wrapped bytes.
func (b *Bytes) String() string { return redacted }

// GoString never reveals the wrapped bytes (used by %#v).
func (b *Bytes) GoString() string { return redacted }
