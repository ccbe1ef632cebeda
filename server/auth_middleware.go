package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kay-express/admin-console/guard"
)

// SessionGuard resolves the operator session once per navigation attempt
// and applies the route guard. Allowed requests proceed with the session
// and a forced sign-out scope injected into the context; everything the
// handlers and the API client need for the 401 escalation hangs off that
// scope.
func (s *Server) SessionGuard() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess, err := s.store.Get(r)

			state := guard.StateUnauthenticated
			switch {
			case err != nil:
				state = guard.StateUnresolved
			case sess.Valid():
				state = guard.StateAuthenticated
			}

			decision := guard.Decide(r.URL.Path, state)
			switch decision.Action {
			case guard.ActionRedirect:
				http.Redirect(w, r, decision.Target, http.StatusSeeOther)
				return
			case guard.ActionDefer:
				// Session resolution failed. Fail closed: drop the cookie
				// we cannot resolve and start over at the login screen
				// rather than rendering a protected page optimistically.
				log.Warn().Err(err).Msg("session resolution failed, forcing re-login")
				s.store.Clear(w, r)
				http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
				return
			}

			scope := &authScope{clear: func() { s.store.Clear(w, r) }}
			ctx := context.WithValue(r.Context(), ContextKeyAuthScope, scope)
			if sess.Valid() {
				ctx = context.WithValue(ctx, ContextKeySession, sess)
			}

			next(w, r.WithContext(ctx))
		}
	}
}
