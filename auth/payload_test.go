package auth

import (
	"bytes"
	"testing"

	"github.com/maefall/zenet/wire"
)

// TestScenarioS2 is the spec's exact fixture: identifier "Zeltra-9",
// timestamp 0x0000000065000000, nonce 0x00...01, mac all-zero.
func TestScenarioS2(t *testing.T) {
	var nonce Nonce
	nonce[15] = 0x01

	payload := AuthPayload{
		ClientIdentifier: "Zeltra-9",
		Timestamp:        0x0000000065000000,
		Nonce:            nonce,
		MAC:              [MACLength]byte{},
	}

	codec := NewCodec()
	encoded, err := codec.Encode(nil, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if got, want := len(encoded), FixedPartLength+8; got != want {
		t.Fatalf("length = %d, want %d", got, want)
	}
	if got := encoded[56]; got != 0x08 {
		t.Fatalf("byte 56 (identifier length) = %#x, want 0x08", got)
	}
	if got := string(encoded[57:65]); got != "Zeltra-9" {
		t.Fatalf("identifier bytes = %q, want %q", got, "Zeltra-9")
	}
}

func TestAuthPayload_RoundTrip(t *testing.T) {
	key := []byte("round trip test key material!!!")
	payload, err := NewAuthPayload("bob-9", key)
	if err != nil {
		t.Fatalf("building payload: %v", err)
	}

	codec := NewCodec()
	encoded, err := codec.Encode(nil, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	buf := wire.NewBuffer(nil)
	buf.Append(encoded)

	decoded, err := codec.Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded == nil {
		t.Fatalf("expected a decoded payload, got nil")
	}
	if decoded.ClientIdentifier != payload.ClientIdentifier {
		t.Fatalf("identifier = %q, want %q", decoded.ClientIdentifier, payload.ClientIdentifier)
	}
	if decoded.Timestamp != payload.Timestamp {
		t.Fatalf("timestamp = %d, want %d", decoded.Timestamp, payload.Timestamp)
	}
	if decoded.Nonce != payload.Nonce {
		t.Fatalf("nonce mismatch")
	}
	if decoded.MAC != payload.MAC {
		t.Fatalf("mac mismatch")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffer fully consumed, %d bytes remain", buf.Len())
	}
}

func TestAuthPayload_PartialReadReturnsNil(t *testing.T) {
	key := []byte("partial read test key material!")
	payload, err := NewAuthPayload("carl", key)
	if err != nil {
		t.Fatalf("building payload: %v", err)
	}

	codec := NewCodec()
	encoded, err := codec.Encode(nil, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	buf := wire.NewBuffer(nil)
	for i := 0; i < len(encoded)-1; i++ {
		buf.Append(encoded[i : i+1])
		decoded, err := codec.Decode(buf)
		if err != nil {
			t.Fatalf("decode at byte %d: %v", i, err)
		}
		if decoded != nil {
			t.Fatalf("decode at byte %d: expected nil, got a payload early", i)
		}
	}
	buf.Append(encoded[len(encoded)-1:])
	decoded, err := codec.Decode(buf)
	if err != nil {
		t.Fatalf("final decode: %v", err)
	}
	if decoded == nil {
		t.Fatalf("expected a complete payload after the final byte")
	}
}

// TestAuthPayload_IdentifierPolicyRejectsBadCharacter covers property 5:
// a byte outside [A-Za-z0-9_-] in the identifier is a hard decode
// error, not NotReady.
func TestAuthPayload_IdentifierPolicyRejectsBadCharacter(t *testing.T) {
	valid, err := NewAuthPayload("valid-name", []byte("identifier policy test key mat!"))
	if err != nil {
		t.Fatalf("building payload: %v", err)
	}

	codec := NewCodec()
	encoded, err := codec.Encode(nil, valid)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Corrupt the first identifier byte to a disallowed character.
	corrupted := bytes.Clone(encoded)
	corrupted[FixedPartLength] = '!'

	buf := wire.NewBuffer(nil)
	buf.Append(corrupted)

	_, err = codec.Decode(buf)
	var malformed *MalformedStringError
	if err == nil {
		t.Fatalf("expected MalformedStringError, got nil")
	}
	if !asMalformedString(err, &malformed) {
		t.Fatalf("expected *MalformedStringError, got %T: %v", err, err)
	}
	if malformed.Kind != InvalidCharacter {
		t.Fatalf("kind = %v, want InvalidCharacter", malformed.Kind)
	}
}

func TestAuthPayload_EncodeRejectsInvalidIdentifier(t *testing.T) {
	payload := AuthPayload{ClientIdentifier: "bad id with spaces"}
	codec := NewCodec()

	_, err := codec.Encode(nil, payload)
	var malformed *MalformedStringError
	if !asMalformedString(err, &malformed) {
		t.Fatalf("expected *MalformedStringError, got %T: %v", err, err)
	}
}

func asMalformedString(err error, target **MalformedStringError) bool {
	if m, ok := err.(*MalformedStringError); ok {
		*target = m
		return true
	}
	return false
}
