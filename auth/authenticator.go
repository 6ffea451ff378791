package auth

import (
	"time"

	"github.com/maefall/zenet/auth/noncestore"
)

// dummyKey stands in for a real key when the client identifier is
// unknown, so GetKey's caller always runs exactly one MAC computation
// over a key of this length regardless of whether the identifier was
// recognized (spec §4.7, property 10: "an unknown client identifier
// must not be distinguishable, by timing, from a known one with a
// wrong MAC").
var dummyKey = make([]byte, 32)

// Authenticator runs spec §4.7's verification sequence against a
// noncestore.Store: clock sanity, skew bound, constant-time MAC check,
// then nonce admission.
type Authenticator struct {
	Store       noncestore.Store
	SkewSeconds uint64
	NonceTTL    time.Duration

	// Now returns the current time; defaults to time.Now when nil.
	// Exposed for deterministic tests.
	Now func() time.Time
}

func (a *Authenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Verify runs the full authentication check for payload and reports
// whether it is valid. A non-nil error indicates either a backend
// failure (e.g. the nonce store itself failed) or an unsynced local
// clock (*UnsyncClockError) — neither is an authentication rejection,
// which is reported as (false, nil).
func (a *Authenticator) Verify(payload AuthPayload) (bool, error) {
	wall := a.now().Unix()
	if wall < 0 {
		// spec §4.7 step 1: fail closed if the clock reads before the
		// epoch, rather than letting it wrap into a huge uint64 and
		// pass the skew check by accident.
		return false, &UnsyncClockError{}
	}
	now := uint64(wall)

	var diff uint64
	if now >= payload.Timestamp {
		diff = now - payload.Timestamp
	} else {
		diff = payload.Timestamp - now
	}
	// Inclusive both sides: diff == SkewSeconds is still acceptable
	// (resolved Open Question, see DESIGN.md).
	if diff > a.SkewSeconds {
		return false, nil
	}

	key, known := a.Store.GetKey(payload.ClientIdentifier)
	if !known {
		key = dummyKey
	}

	match, err := VerifyMAC(key, payload.ClientIdentifier, payload.Timestamp, [16]byte(payload.Nonce), payload.MAC)
	if err != nil {
		return false, &BackendFailureError{Err: err}
	}
	if !known || !match {
		return false, nil
	}

	// Nonce admission runs only after the key is real and the MAC has
	// verified (resolved Open Question: never insert on MAC mismatch).
	admitted, err := a.Store.InsertNonce(payload.ClientIdentifier, noncestore.Nonce128(payload.Nonce), payload.Timestamp, a.NonceTTL)
	if err != nil {
		return false, &BackendFailureError{Err: err}
	}
	if !admitted {
		return false, nil
	}

	return true, nil
}
