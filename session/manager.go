package session

import "sync"

// Repository is the pluggable backend a Manager wraps with locking
// (spec §4.8, §9: "each subsystem carries its own side-table" is one
// admissible shape; this package instead centralizes it behind one
// map, matching the teacher's map-keyed repository).
type Repository interface {
	Create(connectionID uint64) *Session
	Remove(connectionID uint64)
	Get(connectionID uint64) (*Session, bool)
	ActiveConnections() int
}

// mapRepository is the default, in-memory Repository.
type mapRepository struct {
	sessions map[uint64]*Session
}

func newMapRepository() *mapRepository {
	return &mapRepository{sessions: make(map[uint64]*Session)}
}

func (r *mapRepository) Create(connectionID uint64) *Session {
	s := newSession(connectionID)
	r.sessions[connectionID] = s
	return s
}

func (r *mapRepository) Remove(connectionID uint64) {
	delete(r.sessions, connectionID)
}

func (r *mapRepository) Get(connectionID uint64) (*Session, bool) {
	s, ok := r.sessions[connectionID]
	return s, ok
}

func (r *mapRepository) ActiveConnections() int {
	return len(r.sessions)
}

// Manager is the shared, lock-guarded front for a Repository (spec
// §5: "mutations take an exclusive lock; reads take a shared lock.
// Granularity is whole-map"). Grounded on the teacher's
// ConcurrentRepository decorator, generalized from network peers to
// connection-id-keyed sessions.
type Manager struct {
	mu   sync.RWMutex
	repo Repository
}

// NewManager returns a Manager backed by the default in-memory
// Repository.
func NewManager() *Manager {
	return &Manager{repo: newMapRepository()}
}

// NewManagerWithRepository returns a Manager wrapping a caller-supplied
// Repository, for alternative backends (spec §6: "Operators may supply
// an alternative store backend").
func NewManagerWithRepository(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Create creates a session for connectionID if one does not already
// exist, and returns it (spec §3: "Sessions are created implicitly on
// first mutation").
func (m *Manager) Create(connectionID uint64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.repo.Get(connectionID); ok {
		return s
	}
	return m.repo.Create(connectionID)
}

// Remove deletes connectionID's session, called when the transport
// signals connection close (spec §3).
func (m *Manager) Remove(connectionID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repo.Remove(connectionID)
}

// WithSession runs fn against connectionID's session under a shared
// lock. It is a no-op if the session does not exist.
func (m *Manager) WithSession(connectionID uint64, fn func(*Session)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.repo.Get(connectionID); ok {
		fn(s)
	}
}

// WithSessionMut runs fn against connectionID's session under an
// exclusive lock, creating the session first if absent.
func (m *Manager) WithSessionMut(connectionID uint64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.repo.Get(connectionID)
	if !ok {
		s = m.repo.Create(connectionID)
	}
	fn(s)
}

// ActiveConnections reports the number of live sessions.
func (m *Manager) ActiveConnections() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.repo.ActiveConnections()
}

// Authenticate attaches an authenticated AuthState to connectionID's
// session, creating the session if absent (spec §4.8).
func (m *Manager) Authenticate(connectionID uint64, clientIdentifier string, authenticatedAt uint64) {
	m.WithSessionMut(connectionID, func(s *Session) {
		s.authenticate(clientIdentifier, authenticatedAt)
	})
}

// IsAuthenticated reports whether connectionID's session carries an
// authenticated AuthState. Absent session or attribute both read as
// false (spec §4.8, property 12).
func (m *Manager) IsAuthenticated(connectionID uint64) bool {
	authenticated := false
	m.WithSession(connectionID, func(s *Session) {
		authenticated = s.authState().Authenticated
	})
	return authenticated
}

// GetClientID returns the authenticated client identifier for
// connectionID, and whether one is present (property 12).
func (m *Manager) GetClientID(connectionID uint64) (string, bool) {
	var id string
	found := false
	m.WithSession(connectionID, func(s *Session) {
		state := s.authState()
		if state.Authenticated {
			id = state.ClientIdentifier
			found = true
		}
	})
	return id, found
}

// AuthenticatedAt returns the Unix second connectionID's session was
// authenticated at, and whether it has been authenticated at all. It
// exists so an idle-session reaper (see RunIdleReaperLoop) can expire
// stale authenticated sessions on top of the core attribute (spec §9's
// design note on authenticated_at).
func (m *Manager) AuthenticatedAt(connectionID uint64) (uint64, bool) {
	var at uint64
	found := false
	m.WithSession(connectionID, func(s *Session) {
		state := s.authState()
		if state.Authenticated {
			at = state.AuthenticatedAt
			found = true
		}
	})
	return at, found
}

// Connections returns every currently tracked connection id. Used by
// ReapIdle to decide what to evict; exposed for callers building their
// own idle policies on top of the core attribute. It lists ids only for
// the default in-memory Repository; for a Manager built with
// NewManagerWithRepository around any other Repository it returns nil,
// and ReapIdle then removes nothing.
func (m *Manager) Connections() []uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.repo.(*mapRepository)
	if !ok {
		return nil
	}
	ids := make([]uint64, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
