package wire

// TakeUint reads and advances width bytes as a big-endian unsigned
// integer. Returns ok=false if fewer than width bytes are present (the
// buffer is left untouched in that case).
func (b *Buffer) TakeUint(width int, field string) (value uint64, ok bool, err error) {
	raw, status, peekErr := PeekUint(b.data, 0, width, field)
	if peekErr != nil {
		return 0, false, peekErr
	}
	if status == NotReady {
		return 0, false, nil
	}
	b.advance(width)
	return raw, true, nil
}

// TakeFixedBytes splits off exactly length bytes as an owned slice,
// advancing the buffer. Returns ok=false if fewer than length bytes are
// present.
func (b *Buffer) TakeFixedBytes(length int) (out []byte, ok bool) {
	if len(b.data) < length {
		return nil, false
	}
	out = make([]byte, length)
	copy(out, b.data[:length])
	b.advance(length)
	return out, true
}

// TakeLengthPrefixed reads a prefixWidth-byte length prefix, validates
// it against maxLength, and — only if the whole payload is already
// present — consumes the prefix and the payload together, returning the
// payload as an owned slice. The prefix is never consumed on a partial
// read: ok=false leaves the buffer exactly as it was.
func (b *Buffer) TakeLengthPrefixed(prefixWidth, maxLength int, field string) (payload []byte, ok bool, err error) {
	length, status, peekErr := PeekUint(b.data, 0, prefixWidth, field)
	if peekErr != nil {
		return nil, false, peekErr
	}
	if status == NotReady {
		return nil, false, nil
	}
	if int(length) > maxLength {
		return nil, false, &OversizedError{Field: field, Actual: int(length), Limit: maxLength}
	}
	total := prefixWidth + int(length)
	if len(b.data) < total {
		return nil, false, nil
	}
	payload = make([]byte, length)
	copy(payload, b.data[prefixWidth:total])
	b.advance(total)
	return payload, true, nil
}
