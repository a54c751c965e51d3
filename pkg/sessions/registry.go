package sessions

import (
	"errors"
	"sync"

	"twap-book/pkg/metrics"
	"twap-book/pkg/replay"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrTooManySessions = errors.New("too many open sessions")
)

type Registry struct {
	limit    int
	sessions map[uuid.UUID]*Session
	mu       sync.RWMutex
}

func NewRegistry(limit int) *Registry {
	return &Registry{
		limit:    limit,
		sessions: map[uuid.UUID]*Session{},
	}
}

func (r *Registry) Create() (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.sessions) >= r.limit {
		return uuid.Nil, ErrTooManySessions
	}

	id := uuid.New()
	r.sessions[id] = newSession()
	metrics.LiveSessions.Set(float64(len(r.sessions)))
	return id, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Close finalizes the session and forgets it.
func (r *Registry) Close(id uuid.UUID) (replay.Result, error) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		metrics.LiveSessions.Set(float64(len(r.sessions)))
	}
	r.mu.Unlock()

	if !ok {
		return replay.Result{}, ErrNotFound
	}

	res := session.finalize()
	metrics.ReplaysCompleted.WithLabelValues("session").Inc()
	return res, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
