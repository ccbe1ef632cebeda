package session

import (
	"context"
	"time"
)

// Repo defines server-side session persistence keyed by an opaque session
// ID. Implementations must return kerrors.ErrSessionNotFound for unknown
// or expired IDs and treat Delete of a missing ID as a no-op.
type Repo interface {
	Upsert(ctx context.Context, sessionID string, s Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
