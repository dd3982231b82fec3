package session

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/sketchpad/pkg/errors"
)

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	onEvict  func(id string)
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithEvictFunc sets a function called with the ID of every expired session
// the store drops on its own, from Get or from Set making room. Sessions
// removed by Delete or Cleanup are not reported; their callers already know.
func WithEvictFunc(fn func(id string)) MemoryOption {
	return func(s *MemoryStore) { s.onEvict = fn }
}

// NewMemoryStore creates a store holding at most max sessions. A max of zero
// or less is unlimited.
func NewMemoryStore(max int, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{sessions: make(map[string]*Session), max: max}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	if sess.IsExpired() {
		s.mu.Lock()
		// Only the caller that actually removes it reports the eviction.
		evicted := s.sessions[id] == sess
		if evicted {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		if evicted {
			s.evicted(id)
		}
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q expired", id)
	}
	return sess, nil
}

// Set stores sess. When the store is full, expired sessions are dropped
// first; if none are, Set fails with LIMIT_EXCEEDED.
func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	var removed []string
	defer func() { s.evicted(removed...) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; !exists && s.max > 0 && len(s.sessions) >= s.max {
		removed = s.cleanupLocked()
		if len(s.sessions) >= s.max {
			return errors.New(errors.ErrCodeLimitExceeded, "too many sessions (max %d)", s.max)
		}
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleanupLocked(), nil
}

func (s *MemoryStore) cleanupLocked() []string {
	var removed []string
	for id, sess := range s.sessions {
		if sess.IsExpired() {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed
}

func (s *MemoryStore) evicted(ids ...string) {
	if s.onEvict == nil {
		return
	}
	for _, id := range ids {
		s.onEvict(id)
	}
}

// Len returns the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// IDs returns the IDs of all stored sessions, sorted.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var _ Store = (*MemoryStore)(nil)
