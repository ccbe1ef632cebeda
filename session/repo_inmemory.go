package session

import (
	"context"
	"sync"
	"time"

	kerrors "github.com/kay-express/admin-console/internal/errors"
)

// InMemoryRepo is an in-memory implementation of Repo. It is the default
// for tests and single-replica development deployments.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]storedSession

	// nowTime is injectable for expiry tests
	nowTime func() time.Time
}

type storedSession struct {
	session   Session
	expiresAt time.Time
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]storedSession),
		nowTime:  time.Now,
	}
}

// Upsert creates or replaces a session under the given ID
func (r *InMemoryRepo) Upsert(_ context.Context, sessionID string, s Session, ttl time.Duration) error {
	if sessionID == "" {
		return kerrors.Wrapf(kerrors.ErrInternal, "sessionID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = storedSession{
		session:   s,
		expiresAt: r.nowTime().Add(ttl),
	}
	return nil
}

// Get retrieves a session by ID. Expired sessions are removed lazily.
func (r *InMemoryRepo) Get(_ context.Context, sessionID string) (*Session, error) {
	r.mu.RLock()
	stored, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, kerrors.ErrSessionNotFound
	}

	if stored.expiresAt.Before(r.nowTime()) {
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return nil, kerrors.ErrSessionNotFound
	}

	s := stored.session
	return &s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *InMemoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
