package portal

import (
	"sync"
	"time"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/auth"
	"github.com/artem13815/hr/portal/pkg/logger"
)

// Registry maps session ids to workspaces. Workspaces live in process memory:
// after a restart they are rebuilt lazily from the stored session.
type Registry struct {
	api *apiclient.Client

	mu     sync.Mutex
	spaces map[string]*Workspace
}

func NewRegistry(api *apiclient.Client) *Registry {
	return &Registry{api: api, spaces: make(map[string]*Workspace)}
}

// For returns the workspace of sess, creating it on first use.
func (r *Registry) For(sess auth.Session) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.spaces[sess.ID]
	if ok && ws.Session.AccessToken == sess.AccessToken {
		return ws
	}
	if ok {
		ws.Reset()
	}
	ws = NewWorkspace(r.api, sess)
	r.spaces[sess.ID] = ws
	return ws
}

// Drop tears down the workspace of a session. Safe to call for unknown ids.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	ws, ok := r.spaces[sessionID]
	delete(r.spaces, sessionID)
	r.mu.Unlock()
	if ok {
		ws.Reset()
	}
}

// Sweep drops workspaces whose session has expired and returns how many were dropped.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	var expired []*Workspace
	for id, ws := range r.spaces {
		if ws.Session.Expired(now) {
			expired = append(expired, ws)
			delete(r.spaces, id)
		}
	}
	r.mu.Unlock()

	for _, ws := range expired {
		ws.Reset()
	}
	if len(expired) > 0 {
		logger.Info("expired workspaces dropped", "count", len(expired))
	}
	return len(expired)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spaces)
}
