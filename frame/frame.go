// Package frame implements the outer wire frame: one message kind byte
// followed by a 16-bit big-endian length prefix and the payload bytes
// (spec §4.3). Decode never consumes bytes until a whole frame is
// available — a partial frame returns (nil, nil), the decoder-level
// spelling of spec §7's "NotReady" — so the handshake driver can feed
// it a growing scratch buffer across multiple stream reads.
package frame

import (
	"math"

	"github.com/maefall/zenet/wire"
	"github.com/maefall/zenet/wire/fields"
)

// layout fixes the frame's header shape: a 1-byte kind, then a 2-byte
// big-endian length prefix addressing at most 65535 payload bytes (the
// wire format's own ceiling — a Codec's MaxPayloadLength further
// restricts this at runtime, see spec §4.3).
var layout = fields.NewBuilder().
	FixedInt("message_kind", 1).
	LengthPrefixed("payload_length", 2, math.MaxUint16).
	Build()

// FixedPartLength is the 3-byte frame header (kind + length prefix).
const FixedPartLength = 3

// DefaultMaxPayloadLength is the default cap on a single frame's
// payload: one IP datagram's worth of room (spec §4.3).
const DefaultMaxPayloadLength = 1300

// Frame is one message on the wire.
type Frame struct {
	Kind    Kind
	Payload []byte
}

// Codec encodes and decodes Frames within configured size limits.
// A Codec holds only configuration, is trivially copied, and carries no
// mutable state — each connection task is expected to hold its own
// copy (spec §5: "Codec instances ... are value-type").
type Codec struct {
	MaxLength        int
	MaxPayloadLength int
	Registry         *KindRegistry
}

// NewCodec returns a Codec configured with DefaultMaxPayloadLength and
// a MaxLength of FixedPartLength + DefaultMaxPayloadLength, using the
// core's reserved kinds.
func NewCodec() Codec {
	return Codec{
		MaxLength:        FixedPartLength + DefaultMaxPayloadLength,
		MaxPayloadLength: DefaultMaxPayloadLength,
		Registry:         NewKindRegistry(),
	}
}

// Encode serializes f, appending to dst. It rejects payloads over
// 65535 bytes (the wire format's own ceiling), over MaxPayloadLength,
// or whose total encoded length would exceed MaxLength.
func (c Codec) Encode(dst []byte, f Frame) ([]byte, error) {
	if len(f.Payload) > math.MaxUint16 {
		return dst, &OversizedError{Field: "payload_length", Actual: len(f.Payload), Limit: math.MaxUint16}
	}
	if len(f.Payload) > c.MaxPayloadLength {
		return dst, &OversizedError{Field: "payload_length", Actual: len(f.Payload), Limit: c.MaxPayloadLength}
	}

	total := FixedPartLength + len(f.Payload)
	if total < FixedPartLength {
		return dst, &ArithmeticOverflowError{}
	}
	if total > c.MaxLength {
		return dst, &OversizedError{Field: "frame", Actual: total, Limit: c.MaxLength}
	}

	out := make([]byte, 0, len(dst)+total)
	out = append(out, dst...)
	out = wire.PutUint(out, uint64(f.Kind), 1)
	var encErr error
	out, encErr = wire.PutLengthPrefixed(out, f.Payload, 2, c.MaxPayloadLength, "payload_length")
	if encErr != nil {
		return dst, encErr
	}
	return out, nil
}

// Decode attempts to split one Frame off the front of buf. It returns
// (nil, nil) when buf doesn't yet contain a whole frame — the caller
// should await more bytes and retry — and never consumes any of buf in
// that case. A non-nil error is fatal for the stream.
func (c Codec) Decode(buf *wire.Buffer) (*Frame, error) {
	if buf.Len() == 0 {
		return nil, nil
	}

	length, status, err := wire.PeekUint(buf.Bytes(), 1, 2, "payload_length")
	if err != nil {
		return nil, err
	}
	if status == wire.NotReady {
		return nil, nil
	}
	if int(length) > c.MaxPayloadLength {
		return nil, &OversizedError{Field: "payload_length", Actual: int(length), Limit: c.MaxPayloadLength}
	}

	total := FixedPartLength + int(length)
	if total > c.MaxLength {
		return nil, &OversizedError{Field: "frame", Actual: total, Limit: c.MaxLength}
	}
	if buf.Len() < total {
		return nil, nil
	}

	kindValue, ok, err := buf.TakeUint(1, "message_kind")
	if err != nil || !ok {
		// ok=false can't happen: we already confirmed total bytes present.
		return nil, err
	}
	kind := Kind(kindValue)
	if c.Registry != nil && !c.Registry.Valid(kind) {
		return nil, &InvalidMessageTypeError{Code: uint8(kind)}
	}

	payload, ok, err := buf.TakeLengthPrefixed(2, c.MaxPayloadLength, "payload_length")
	if err != nil || !ok {
		return nil, err
	}

	return &Frame{Kind: kind, Payload: payload}, nil
}
