package bruteforce

import (
	"sync"
	"time"
)

// EvictReason explains why an entry left the store.
type EvictReason string

const (
	EvictExpired  EvictReason = "expired"
	EvictCapacity EvictReason = "capacity"
)

// EvictFunc is an optional hook invoked (under the store lock) when an entry
// is evicted. Hooks must be cheap and must not call back into the store.
type EvictFunc func(username string, rec Record, reason EvictReason)

type entry struct {
	rec       Record
	writtenAt time.Time
}

// Store is a time-expiring, capacity-bounded map from username to Record.
// An entry not written to within the ttl is evicted regardless of reads; when
// the entry count would exceed maxEntries, the least recently written entry
// is dropped first. Safe for concurrent use; Update makes read-modify-write
// a single atomic operation per username.
type Store struct {
	mu         sync.Mutex
	entries    map[string]*entry
	ttl        time.Duration
	maxEntries int
	onEvict    EvictFunc
	now        func() time.Time
}

// NewStore creates a Store with the given write-TTL and capacity bound.
func NewStore(ttl time.Duration, maxEntries int) *Store {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Store{
		entries:    make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// OnEvict registers an eviction hook for auditability. Call before the store
// is shared between goroutines.
func (s *Store) OnEvict(fn EvictFunc) {
	s.onEvict = fn
}

// Get returns the record for username, if present and not expired.
func (s *Store) Get(username string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[username]
	if !ok {
		return Record{}, false
	}
	if s.expired(e) {
		s.evict(username, e, EvictExpired)
		return Record{}, false
	}
	return e.rec, true
}

// Put stores the record under username, refreshing its expiry window.
func (s *Store) Put(username string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(username, rec)
}

// Remove deletes the record for username, if any.
func (s *Store) Remove(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, username)
}

// Update applies fn to the current record for username as one atomic
// operation. fn receives the existing record (zero value if absent) and a
// found flag, and returns the record to store. Two concurrent Updates for the
// same username always observe each other's writes.
func (s *Store) Update(username string, fn func(rec Record, found bool) Record) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cur Record
	found := false
	if e, ok := s.entries[username]; ok && !s.expired(e) {
		cur = e.rec
		found = true
	}

	next := fn(cur, found)
	s.put(username, next)
	return next
}

// Len returns the current entry count, expired entries included until their
// next access or an overflow sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.writtenAt) >= s.ttl
}

// put assumes the lock is held.
func (s *Store) put(username string, rec Record) {
	if _, exists := s.entries[username]; !exists && len(s.entries) >= s.maxEntries {
		s.makeRoom()
	}
	s.entries[username] = &entry{rec: rec, writtenAt: s.now()}
}

// makeRoom frees at least one slot: expired entries go first, then the least
// recently written live entry. Assumes the lock is held.
func (s *Store) makeRoom() {
	var (
		oldestKey string
		oldest    *entry
	)
	for k, e := range s.entries {
		if s.expired(e) {
			s.evict(k, e, EvictExpired)
			continue
		}
		if oldest == nil || e.writtenAt.Before(oldest.writtenAt) {
			oldestKey, oldest = k, e
		}
	}
	if len(s.entries) >= s.maxEntries && oldest != nil {
		s.evict(oldestKey, oldest, EvictCapacity)
	}
}

// evict assumes the lock is held.
func (s *Store) evict(username string, e *entry, reason EvictReason) {
	delete(s.entries, username)
	if s.onEvict != nil {
		s.onEvict(username, e.rec, reason)
	}
}
