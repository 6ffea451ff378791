package wire

import "encoding/binary"

// PutUint appends a width-byte big-endian unsigned integer. width must
// be 1, 2, 4, or 8; any other value panics, since it indicates a
// declaration-time mistake rather than a runtime data error.
func PutUint(dst []byte, value uint64, width int) []byte {
	switch width {
	case 1:
		return append(dst, byte(value))
	case 2:
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(value))
		return append(dst, buf[:]...)
	case 4:
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(value))
		return append(dst, buf[:]...)
	case 8:
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], value)
		return append(dst, buf[:]...)
	default:
		panic("wire: PutUint: unsupported width")
	}
}

// PutFixedBytes appends src, verifying it is exactly length bytes long.
func PutFixedBytes(dst []byte, src []byte, length int, field string) ([]byte, error) {
	if len(src) > length {
		return dst, &OversizedError{Field: field, Actual: len(src), Limit: length}
	}
	if len(src) < length {
		return dst, &UnderflowError{Field: field, Actual: len(src), Required: length}
	}
	return append(dst, src...), nil
}

// PutLengthPrefixed appends a prefixWidth-byte big-endian length prefix
// followed by payload, after verifying payload does not exceed
// maxLength.
func PutLengthPrefixed(dst []byte, payload []byte, prefixWidth, maxLength int, field string) ([]byte, error) {
	if len(payload) > maxLength {
		return dst, &OversizedError{Field: field, Actual: len(payload), Limit: maxLength}
	}
	dst = PutUint(dst, uint64(len(payload)), prefixWidth)
	return append(dst, payload...), nil
}
