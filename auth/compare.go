package auth

import "crypto/subtle"

// constantTimeEqual compares two equal-length byte slices in constant
// time. Grounded on dantte-lp-gobfd/internal/bfd/auth.go, which uses
// crypto/subtle.ConstantTimeCompare for the same purpose (comparing a
// received digest against an expected one without leaking a timing
// signal); no third-party constant-time-compare library exists in the
// corpus or the wider ecosystem, since crypto/subtle is the canonical
// primitive for this in Go.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
