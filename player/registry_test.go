// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PutGetRemove(t *testing.T) {
	r := NewRegistry(0)
	s := newTestSession(t, &fakeGateway{})

	r.Put(s)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	r.Remove(s.ID())
	_, ok = r.Get(s.ID())
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry(0)
	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestRegistry_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, NewRegistry(0).ttl)
	assert.Equal(t, DefaultSessionTTL, NewRegistry(-time.Minute).ttl)
	assert.Equal(t, 5*time.Minute, NewRegistry(5*time.Minute).ttl)
}

func TestRegistry_SweepExpiresIdleSessions(t *testing.T) {
	r := NewRegistry(30 * time.Minute)

	stale := newTestSession(t, &fakeGateway{})
	fresh := newTestSession(t, &fakeGateway{})
	r.Put(stale)
	r.Put(fresh)

	// Age the stale session past the TTL.
	stale.mu.Lock()
	stale.touched = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	removed := r.Sweep()
	assert.Equal(t, 1, removed)

	_, ok := r.Get(stale.ID())
	assert.False(t, ok)
	_, ok = r.Get(fresh.ID())
	assert.True(t, ok)
}

func TestRegistry_SweepKeepsActiveSessions(t *testing.T) {
	r := NewRegistry(30 * time.Minute)
	s := newTestSession(t, &fakeGateway{})
	r.Put(s)

	assert.Equal(t, 0, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestSession_InteractionTouches(t *testing.T) {
	s := newTestSession(t, &fakeGateway{})

	s.mu.Lock()
	s.touched = time.Now().Add(-time.Hour)
	s.mu.Unlock()
	before := s.LastTouched()

	s.Retreat()
	assert.True(t, s.LastTouched().After(before), "any interaction refreshes the idle clock")
}
