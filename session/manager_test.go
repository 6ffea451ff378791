package session

import "testing"

// TestAuthenticationVisibility covers property 12: after authenticate,
// is_authenticated and get_client_id reflect it, and any other
// connection id reads as unauthenticated.
func TestAuthenticationVisibility(t *testing.T) {
	m := NewManager()

	m.Authenticate(1, "alice", 1000)

	if !m.IsAuthenticated(1) {
		t.Fatalf("expected connection 1 to be authenticated")
	}
	id, ok := m.GetClientID(1)
	if !ok || id != "alice" {
		t.Fatalf("GetClientID(1) = (%q, %v), want (\"alice\", true)", id, ok)
	}

	if m.IsAuthenticated(2) {
		t.Fatalf("expected connection 2 to be unauthenticated")
	}
	if _, ok := m.GetClientID(2); ok {
		t.Fatalf("expected no client id for connection 2")
	}
}

func TestCreateIsIdempotent(t *testing.T) {
	m := NewManager()

	first := m.Create(7)
	first.SetAttribute("k", "v")

	second := m.Create(7)
	if second != first {
		t.Fatalf("expected Create to return the existing session")
	}
	v, ok := second.Attribute("k")
	if !ok || v != "v" {
		t.Fatalf("expected attribute to survive, got (%v, %v)", v, ok)
	}
}

func TestRemoveDropsSession(t *testing.T) {
	m := NewManager()
	m.Authenticate(3, "bob", 500)

	m.Remove(3)

	if m.IsAuthenticated(3) {
		t.Fatalf("expected removed session to read as unauthenticated")
	}
	if n := m.ActiveConnections(); n != 0 {
		t.Fatalf("ActiveConnections() = %d, want 0", n)
	}
}

func TestWithSessionMutCreatesIfAbsent(t *testing.T) {
	m := NewManager()

	m.WithSessionMut(9, func(s *Session) {
		s.SetAttribute("seen", true)
	})

	if n := m.ActiveConnections(); n != 1 {
		t.Fatalf("ActiveConnections() = %d, want 1", n)
	}
}

func TestWithSessionIsNoOpForMissingSession(t *testing.T) {
	m := NewManager()
	called := false

	m.WithSession(42, func(s *Session) { called = true })

	if called {
		t.Fatalf("expected WithSession to skip a missing session")
	}
}

func TestAttributeBagIsHeterogeneous(t *testing.T) {
	m := NewManager()
	s := m.Create(1)

	s.SetAttribute("auth.AuthState", AuthState{Authenticated: true, ClientIdentifier: "alice"})
	s.SetAttribute("audio.Stream", 42)

	authAny, ok := s.Attribute("auth.AuthState")
	if !ok {
		t.Fatalf("expected auth attribute to be present")
	}
	if authAny.(AuthState).ClientIdentifier != "alice" {
		t.Fatalf("unexpected auth attribute contents")
	}

	audioAny, ok := s.Attribute("audio.Stream")
	if !ok || audioAny.(int) != 42 {
		t.Fatalf("expected an unrelated subsystem's attribute to coexist untouched")
	}
}
