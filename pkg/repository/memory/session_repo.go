// Package memory keeps portal sessions in process memory (single instance, dev and tests).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artem13815/hr/portal/pkg/auth"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]auth.Session), now: time.Now}
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (auth.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return auth.Session{}, auth.ErrNotFound
	}
	if s.Expired(r.now()) {
		_ = r.Delete(ctx, id)
		return auth.Session{}, auth.ErrNotFound
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// Purge drops expired sessions and reports how many were removed.
func (r *SessionRepository) Purge(ctx context.Context) (int64, error) {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
