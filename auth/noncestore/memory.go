package noncestore

import (
	"container/list"
	"sync"
	"time"

	"github.com/maefall/zenet/internal/secret"
)

// entry is one (nonce, timestamp) pair living in a client's FIFO.
type entry struct {
	nonce     Nonce128
	timestamp uint64
}

// clientTable is the per-client (queue, set) pair from spec §3: an
// ordered FIFO (oldest first) plus a set mirroring its membership, kept
// at equal cardinality at every quiescent state. Grounded on
// Yawning-obfs4/replay_filter.go's container/list + map shape, with
// per-client (rather than global) locking per spec §5.
type clientTable struct {
	mu    sync.Mutex
	queue *list.List
	set   map[Nonce128]*list.Element
}

func newClientTable() *clientTable {
	return &clientTable{
		queue: list.New(),
		set:   make(map[Nonce128]*list.Element),
	}
}

// insert runs spec §4.6's exact sequence: evict expired entries from
// the head, reject a replay, evict-for-capacity if still full, then
// admit. Must be called with t.mu held.
func (t *clientTable) insert(nonce Nonce128, timestamp uint64, ttlSeconds uint64, maxPerClient int) bool {
	cutoff := int64(timestamp) - int64(ttlSeconds)

	for front := t.queue.Front(); front != nil; {
		e := front.Value.(entry)
		// Strict '<': entries exactly at the cutoff are retained (spec §4.6
		// tie-breaking rule).
		if int64(e.timestamp) >= cutoff {
			break
		}
		next := front.Next()
		t.queue.Remove(front)
		delete(t.set, e.nonce)
		front = next
	}

	if _, seen := t.set[nonce]; seen {
		return false
	}

	if t.queue.Len() >= maxPerClient {
		oldest := t.queue.Front()
		if oldest != nil {
			t.queue.Remove(oldest)
			delete(t.set, oldest.Value.(entry).nonce)
		}
	}

	elem := t.queue.PushBack(entry{nonce: nonce, timestamp: timestamp})
	t.set[nonce] = elem
	return true
}

// idleSince reports the timestamp of the newest entry still held, or
// false if the table is empty.
func (t *clientTable) idleSince() (uint64, bool) {
	back := t.queue.Back()
	if back == nil {
		return 0, false
	}
	return back.Value.(entry).timestamp, true
}

// MemoryStore is the in-process Store backend (spec §1: "no
// cross-process nonce sharing; the in-memory backend is per-process").
// Keys are a pluggable map wrapped in secret.Bytes (spec §3
// "Ownership"); nonce tables are sharded per client identifier so
// verifications on different clients proceed in parallel (spec §5).
type MemoryStore struct {
	maxPerClient int
	idleRetain   time.Duration

	keysMu sync.RWMutex
	keys   map[string]*secret.Bytes

	tables sync.Map // string -> *clientTable
}

// NewMemoryStore returns a MemoryStore bounding every client's nonce
// FIFO to maxPerClient entries and dropping per-client tables idle for
// longer than idleRetain on Cleanup.
func NewMemoryStore(maxPerClient int, idleRetain time.Duration) *MemoryStore {
	return &MemoryStore{
		maxPerClient: maxPerClient,
		idleRetain:   idleRetain,
		keys:         make(map[string]*secret.Bytes),
	}
}

// SetKey registers (or replaces) the secret key for clientIdentifier.
// Not part of the Store interface: it's how an operator provisions the
// pluggable key map (spec §1 Non-goals: "the key store is a pluggable
// map").
func (m *MemoryStore) SetKey(clientIdentifier string, key []byte) {
	m.keysMu.Lock()
	defer m.keysMu.Unlock()
	if old, ok := m.keys[clientIdentifier]; ok {
		old.Close()
	}
	m.keys[clientIdentifier] = secret.New(key)
}

// GetKey implements Store.
func (m *MemoryStore) GetKey(clientIdentifier string) ([]byte, bool) {
	m.keysMu.RLock()
	defer m.keysMu.RUnlock()
	k, ok := m.keys[clientIdentifier]
	if !ok {
		return nil, false
	}
	return k.Expose(), true
}

// InsertNonce implements Store.
func (m *MemoryStore) InsertNonce(clientIdentifier string, nonce Nonce128, timestamp uint64, ttl time.Duration) (bool, error) {
	tableAny, _ := m.tables.LoadOrStore(clientIdentifier, newClientTable())
	table := tableAny.(*clientTable)

	table.mu.Lock()
	defer table.mu.Unlock()
	return table.insert(nonce, timestamp, uint64(ttl/time.Second), m.maxPerClient), nil
}

// Cleanup implements Store. It drops every per-client table whose
// newest entry is older than idleRetain, freeing memory for clients
// that handshook once and never returned (see SPEC_FULL.md's
// Supplemented Features).
func (m *MemoryStore) Cleanup(now time.Time) {
	cutoff := now.Add(-m.idleRetain).Unix()

	m.tables.Range(func(key, value any) bool {
		table := value.(*clientTable)
		table.mu.Lock()
		newest, has := table.idleSince()
		empty := !has || int64(newest) < cutoff
		table.mu.Unlock()

		if empty {
			m.tables.Delete(key)
		}
		return true
	})
}
