// Package session keeps editors alive between HTTP requests.
//
// A [Session] pairs one [editor.Editor] with an ID and a mutex. The editor is
// single-threaded; every access from a concurrent host goes through
// [Session.Do], which holds the session lock for the duration of the call.
//
// # Usage
//
//	sess, err := session.New(cfg.SessionRegistry, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err = store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) {
//	    // 404
//	}
//	err = sess.Do(func(e *editor.Editor) error {
//	    e.PointerDown(x, y)
//	    return nil
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is one editor and its bookkeeping.
type Session struct {
	ID        string
	CreatedAt time.Time

	ttl time.Duration

	mu       sync.Mutex
	editor   *editor.Editor
	lastUsed time.Time
}

// Palette builds the tool registry for the session with the given ID.
type Palette func(id string) *tool.Registry

// New creates a session with a fresh editor over the tools palette returns
// for its ID. A ttl of zero never expires.
func New(palette Palette, ttl time.Duration, opts ...editor.Option) (*Session, error) {
	id := uuid.NewString()
	e, err := editor.New(palette(id), opts...)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		ttl:       ttl,
		editor:    e,
		lastUsed:  now,
	}, nil
}

// Do runs fn with exclusive access to the editor and marks the session used.
func (s *Session) Do(fn func(e *editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return fn(s.editor)
}

// LastUsed returns when Do was last called.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// IsExpired reports whether the session has been idle longer than its TTL.
func (s *Session) IsExpired() bool {
	if s.ttl <= 0 {
		return false
	}
	return time.Since(s.LastUsed()) > s.ttl
}

// ExpiresAt returns when the session expires if left idle. It is the zero
// time for sessions that never expire.
func (s *Session) ExpiresAt() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.LastUsed().Add(s.ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. A missing or expired session is a
	// SESSION_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns their IDs.
	Cleanup(ctx context.Context) ([]string, error)
}
