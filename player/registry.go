// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package player

import (
	"sync"
	"time"
)

// DefaultSessionTTL is how long an abandoned session survives without
// interaction before the sweeper discards it.
const DefaultSessionTTL = 30 * time.Minute

// Registry holds the live sessions of one server process. Sessions are
// never persisted: closing the tab or submitting ends them, and the
// sweeper reclaims the abandoned ones.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates a registry; ttl <= 0 uses DefaultSessionTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put registers a session.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Get returns a live session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove discards a session, the tab-close analog.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep discards sessions idle past the TTL and returns how many were
// removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	candidates := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		candidates = append(candidates, s)
	}
	cutoff := r.now().Add(-r.ttl)
	r.mu.Unlock()

	// LastTouched takes the session lock, so collect outside r.mu.
	expired := make([]string, 0)
	for _, s := range candidates {
		if s.LastTouched().Before(cutoff) {
			expired = append(expired, s.ID())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range expired {
		delete(r.sessions, id)
	}
	return len(expired)
}
