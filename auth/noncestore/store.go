// Package noncestore implements the per-client bounded nonce-replay
// cache described in spec §4.6: a FIFO of (nonce, timestamp) pairs
// bounded by max_per_client, with time-window expiry and at-most-once
// admission. It doubles as the pluggable key store spec §6 describes,
// since both are one interface in the original.
package noncestore

import "time"

// Nonce128 is a 128-bit nonce value. It mirrors auth.Nonce's underlying
// representation without importing package auth, which would create an
// import cycle (auth imports noncestore to drive its Authenticator).
type Nonce128 [16]byte

// Store is the pluggable backend the Authenticator consults: key
// lookup, at-most-once nonce admission, and optional periodic cleanup.
type Store interface {
	// GetKey returns the secret key for clientIdentifier, or ok=false if
	// no key is configured for it.
	GetKey(clientIdentifier string) (key []byte, ok bool)

	// InsertNonce admits (nonce, timestamp) for clientIdentifier under
	// the given ttl, per spec §4.6's exact eviction-then-admit sequence.
	// It returns false (not an error) when the nonce is a replay within
	// the window.
	InsertNonce(clientIdentifier string, nonce Nonce128, timestamp uint64, ttl time.Duration) (bool, error)

	// Cleanup drops any per-client state that's been completely idle,
	// so clients that handshake once and never return don't pin memory
	// forever. It's a supplement beyond the core exactly-once contract
	// (see SPEC_FULL.md's Supplemented Features).
	Cleanup(now time.Time)
}
