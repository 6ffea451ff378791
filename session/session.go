// Package session implements the per-connection attribute bag and its
// manager (spec §4.8): a map from a stable connection id to a session
// carrying a heterogeneous, subsystem-owned set of attributes. Auth
// attaches an AuthState; other subsystems (e.g. an audio extension)
// attach their own attribute types without touching this package.
package session

import "sync"

// AuthState is the attribute the auth handshake attaches to a session
// (spec §4.8).
type AuthState struct {
	Authenticated    bool
	ClientIdentifier string
	AuthenticatedAt  uint64
}

// authStateKey is the attribute-type tag AuthState is stored under
// (spec §9: "map keyed by a small integer or string tag assigned per
// attribute type").
const authStateKey = "auth.AuthState"

// Session holds one connection's attribute bag, keyed by connection id
// for its whole lifetime (spec §3).
type Session struct {
	connectionID uint64

	mu         sync.RWMutex
	attributes map[string]any
}

func newSession(connectionID uint64) *Session {
	return &Session{
		connectionID: connectionID,
		attributes:   make(map[string]any),
	}
}

// ConnectionID returns the stable id this session is keyed by.
func (s *Session) ConnectionID() uint64 { return s.connectionID }

// Attribute returns the value stored under key, and whether it is
// present. Subsystems outside auth use this to attach their own
// per-connection state without this package knowing their type.
func (s *Session) Attribute(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attributes[key]
	return v, ok
}

// SetAttribute stores value under key, replacing any previous value.
func (s *Session) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributes[key] = value
}

// authState returns a copy of the session's AuthState, or the zero
// value if none has been attached yet.
func (s *Session) authState() AuthState {
	v, ok := s.Attribute(authStateKey)
	if !ok {
		return AuthState{}
	}
	return v.(AuthState)
}

// authenticate attaches (or overwrites) the session's AuthState,
// marking it authenticated for clientIdentifier at authenticatedAt
// (spec §4.8: "creates the attribute if absent and sets all three
// fields").
func (s *Session) authenticate(clientIdentifier string, authenticatedAt uint64) {
	s.SetAttribute(authStateKey, AuthState{
		Authenticated:    true,
		ClientIdentifier: clientIdentifier,
		AuthenticatedAt:  authenticatedAt,
	})
}
