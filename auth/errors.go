package auth

import "fmt"

// StringErrorKind classifies why a client identifier failed validation.
type StringErrorKind uint8

const (
	InvalidUTF8 StringErrorKind = iota
	NonASCII
	TooLong
	InvalidCharacter
)

func (k StringErrorKind) String() string {
	switch k {
	case InvalidUTF8:
		return "InvalidUtf8"
	case NonASCII:
		return "NonAscii"
	case TooLong:
		return "TooLong"
	case InvalidCharacter:
		return "InvalidCharacter"
	default:
		return "Unknown"
	}
}

// MalformedStringError reports that client_identifier failed the
// ASCII-hyphen policy (spec §3, §4.4): it must be 1–255 bytes, each
// byte alphanumeric, '_', or '-'.
type MalformedStringError struct {
	Field string
	Kind  StringErrorKind
}

func (e *MalformedStringError) Error() string {
	return fmt.Sprintf("auth: field %q malformed: %s", e.Field, e.Kind)
}

// InvalidKeyLengthError reports that HMAC construction rejected the key
// (crypto/hmac never actually rejects a key by length, but the error
// exists so callers have a single type to treat as "verification
// failure without leaking which side failed", per spec §4.5/§4.7).
type InvalidKeyLengthError struct{}

func (e *InvalidKeyLengthError) Error() string { return "auth: invalid key length" }

// UnsyncClockError reports that the local wall clock reads before the
// Unix epoch. Treated as a verification failure, never trusted blindly.
type UnsyncClockError struct{}

func (e *UnsyncClockError) Error() string { return "auth: system clock is before the epoch" }

// BackendFailureError wraps a nonce-store or key-store error so the
// authenticator can treat any backend problem uniformly as a
// verification failure.
type BackendFailureError struct {
	Err error
}

func (e *BackendFailureError) Error() string { return fmt.Sprintf("auth: backend failure: %v", e.Err) }
func (e *BackendFailureError) Unwrap() error { return e.Err }
