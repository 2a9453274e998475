// Package session holds per-client working state. A session is an explicit
// context object: the loaded data record, the job card form in progress and
// the last extraction result live here, never in package globals.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"qalib/internal/domain"
)

// Session is the unit of working state for one client.
type Session struct {
	ID        string                       `json:"id"`
	CreatedAt time.Time                    `json:"created_at"`
	UpdatedAt time.Time                    `json:"updated_at"`
	ExpiresAt time.Time                    `json:"expires_at"`
	Data      domain.FlatRecord            `json:"data,omitempty"`
	Record    *domain.JobDescriptionRecord `json:"record,omitempty"`
}

// clone returns a snapshot safe to hand outside the store lock. The Data map
// is copied; Record is replaced whole on save and never mutated in place, so
// sharing the pointer is safe.
func (s *Session) clone() *Session {
	cp := *s
	if s.Data != nil {
		cp.Data = make(domain.FlatRecord, len(s.Data))
		for k, v := range s.Data {
			cp.Data[k] = v
		}
	}
	return &cp
}

// Store keeps sessions in memory with TTL eviction. Sessions are request
// scoped working state, so process restarts are allowed to drop them.
// Callers only ever see snapshots; the live structs stay behind the mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create mints a new empty session.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess.clone()
}

// Get returns a snapshot of the session by ID, or ErrSessionInvalid when it
// does not exist or has expired. Expired sessions are evicted on access.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.clone(), nil
}

// Update applies fn to the session under the store lock, bumps its UpdatedAt
// and expiry, and returns a snapshot of the result.
func (s *Store) Update(id string, fn func(*Session)) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	fn(sess)
	now := s.now()
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return sess.clone(), nil
}

// lookup resolves the live session. The caller must hold the write lock.
func (s *Store) lookup(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown session %s", domain.ErrSessionInvalid, id)
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, fmt.Errorf("%w: session %s expired", domain.ErrSessionInvalid, id)
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep evicts all expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
