package auth

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/maefall/zenet/wire"
)

// MACLength is the fixed HMAC-SHA256 tag size.
const MACLength = 32

// ComputeMAC computes the deterministic HMAC-SHA256 tag over the
// canonical pre-image described in spec §4.5:
//
//	u16_be(id_len) ‖ id_bytes ‖ u64_be(timestamp) ‖ u128_be(nonce)
//
// crypto/hmac never actually errors on key length, but the corpus's own
// auth code (dantte-lp-gobfd/internal/bfd/auth.go) treats any MAC
// construction failure as a uniform verification failure rather than a
// distinguishable error, so this keeps the same shape for callers.
func ComputeMAC(key []byte, identifier string, timestamp uint64, nonce [16]byte) ([MACLength]byte, error) {
	preimage := canonicalPreimage(identifier, timestamp, nonce)

	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write(preimage); err != nil {
		return [MACLength]byte{}, &InvalidKeyLengthError{}
	}

	var out [MACLength]byte
	copy(out[:], mac.Sum(nil))
	return out, nil
}

func canonicalPreimage(identifier string, timestamp uint64, nonce [16]byte) []byte {
	buf := make([]byte, 0, 2+len(identifier)+8+16)
	buf = wire.PutUint(buf, uint64(len(identifier)), 2)
	buf = append(buf, identifier...)
	buf = wire.PutUint(buf, timestamp, 8)
	buf = append(buf, nonce[:]...)
	return buf
}

// VerifyMAC recomputes the expected MAC and compares it against mac in
// constant time, so that a comparison failure carries no timing signal
// about how many leading bytes matched (spec §8 properties 6, 11).
func VerifyMAC(key []byte, identifier string, timestamp uint64, nonce [16]byte, mac [MACLength]byte) (bool, error) {
	expected, err := ComputeMAC(key, identifier, timestamp, nonce)
	if err != nil {
		return false, err
	}
	return constantTimeEqual(expected[:], mac[:]), nil
}
