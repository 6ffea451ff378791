// Package auth implements the AuthPayload wire record (spec §4.4), its
// HMAC-SHA256 computation (spec §4.5), the replay-resistant
// authenticator (spec §4.7), and the taxonomy of errors each can raise.
package auth

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/maefall/zenet/wire"
	"github.com/maefall/zenet/wire/fields"
)

// layout fixes the auth record's shape:
//
//	[u64 timestamp][u128 nonce][32-byte mac][u8 id_len][id bytes...]
var layout = fields.NewBuilder().
	FixedInt("timestamp", 8).
	FixedBytes("nonce", 16).
	FixedBytes("mac", MACLength).
	LengthPrefixed("client_identifier", 1, MaxIdentifierLength).
	Build()

// FixedPartLength is the 57-byte fixed portion of an auth record.
var FixedPartLength = layout.FixedPartLength

// MaxLength is the largest an auth record can be (57 + 255).
var MaxLength = layout.MaxLength

// Nonce is the 128-bit value a client generates fresh for every
// handshake attempt.
type Nonce [16]byte

// NewNonce returns a cryptographically random 128-bit nonce.
func NewNonce() (Nonce, error) {
	var n Nonce
	if _, err := rand.Read(n[:]); err != nil {
		return Nonce{}, fmt.Errorf("auth: generating nonce: %w", err)
	}
	return n, nil
}

// AuthPayload is the inner record of a KindAuth frame (spec §3). It is
// created client-side at handshake time and consumed server-side within
// one verification call; it is never persisted.
type AuthPayload struct {
	ClientIdentifier string
	Timestamp        uint64
	Nonce            Nonce
	MAC              [MACLength]byte
}

// NewAuthPayload builds a ready-to-send AuthPayload for identifier
// using key, stamped with the current wall-clock second and a fresh
// random nonce.
func NewAuthPayload(identifier string, key []byte) (AuthPayload, error) {
	if err := ValidateIdentifier(identifier); err != nil {
		return AuthPayload{}, err
	}
	nonce, err := NewNonce()
	if err != nil {
		return AuthPayload{}, err
	}
	timestamp := uint64(time.Now().Unix())
	mac, err := ComputeMAC(key, identifier, timestamp, [16]byte(nonce))
	if err != nil {
		return AuthPayload{}, err
	}
	return AuthPayload{
		ClientIdentifier: identifier,
		Timestamp:        timestamp,
		Nonce:            nonce,
		MAC:              mac,
	}, nil
}

// Codec encodes and decodes AuthPayload records. Like frame.Codec, it
// holds no mutable state and is safe to copy per connection task.
type Codec struct{}

// NewCodec returns a ready-to-use auth payload codec.
func NewCodec() Codec { return Codec{} }

// Encode serializes p, appending to dst. It validates p.ClientIdentifier
// against the ASCII-hyphen policy before writing anything.
func (Codec) Encode(dst []byte, p AuthPayload) ([]byte, error) {
	if err := ValidateIdentifier(p.ClientIdentifier); err != nil {
		return dst, err
	}

	out := dst
	out = wire.PutUint(out, p.Timestamp, 8)

	var err error
	out, err = wire.PutFixedBytes(out, p.Nonce[:], 16, "nonce")
	if err != nil {
		return dst, err
	}
	out, err = wire.PutFixedBytes(out, p.MAC[:], MACLength, "mac")
	if err != nil {
		return dst, err
	}
	out, err = wire.PutLengthPrefixed(out, []byte(p.ClientIdentifier), 1, MaxIdentifierLength, "client_identifier")
	if err != nil {
		return dst, err
	}
	return out, nil
}

// Decode attempts to split one AuthPayload off the front of buf. It
// returns (nil, nil) on a partial read. A malformed client identifier
// is a hard error, not NotReady (spec §4.4: "any violation is a hard
// MalformedString error").
func (Codec) Decode(buf *wire.Buffer) (*AuthPayload, error) {
	idLength, status, err := wire.PeekUint(buf.Bytes(), FixedPartLength-1, 1, "client_identifier")
	if err != nil {
		return nil, err
	}
	if status == wire.NotReady {
		return nil, nil
	}
	total := FixedPartLength + int(idLength)
	if buf.Len() < total {
		return nil, nil
	}

	timestamp, ok, err := buf.TakeUint(8, "timestamp")
	if err != nil || !ok {
		return nil, err
	}
	nonceBytes, ok := buf.TakeFixedBytes(16)
	if !ok {
		return nil, &wire.UnderflowError{Field: "nonce", Actual: 0, Required: 16}
	}
	macBytes, ok := buf.TakeFixedBytes(MACLength)
	if !ok {
		return nil, &wire.UnderflowError{Field: "mac", Actual: 0, Required: MACLength}
	}
	idBytes, ok, err := buf.TakeLengthPrefixed(1, MaxIdentifierLength, "client_identifier")
	if err != nil || !ok {
		return nil, err
	}

	identifier := string(idBytes)
	if validateErr := ValidateIdentifier(identifier); validateErr != nil {
		return nil, validateErr
	}

	var nonce Nonce
	copy(nonce[:], nonceBytes)
	var mac [MACLength]byte
	copy(mac[:], macBytes)

	return &AuthPayload{
		ClientIdentifier: identifier,
		Timestamp:        timestamp,
		Nonce:            nonce,
		MAC:              mac,
	}, nil
}
