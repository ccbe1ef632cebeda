package server

import (
	"context"
	"sync"

	"github.com/kay-express/admin-console/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the resolved operator session (may be nil
	// on public routes)
	ContextKeySession ContextKey = "session"
	// ContextKeyAuthScope stores the per-request forced sign-out scope
	ContextKeyAuthScope ContextKey = "auth_scope"
)

// authScope carries the forced sign-out side effect for one request.
// Several upstream calls can fail with 401 concurrently within the same
// request; the sync.Once collapses them into a single clear.
type authScope struct {
	once  sync.Once
	clear func()
}

func (a *authScope) signOut() {
	a.once.Do(a.clear)
}

// SessionFromContext returns the operator session resolved by the session
// guard middleware, or nil when the request is unauthenticated.
func SessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(ContextKeySession).(*session.Session)
	return s
}

func scopeFromContext(ctx context.Context) *authScope {
	scope, _ := ctx.Value(ContextKeyAuthScope).(*authScope)
	return scope
}
