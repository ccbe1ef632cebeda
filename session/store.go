package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	kerrors "github.com/kay-express/admin-console/internal/errors"
)

// Store is the single source of truth for "who is logged in and with what
// tokens". It is the only writer of its own contents: the authenticator
// and the refresh operation produce sessions, everything else only reads
// or clears.
//
// Get returns (nil, nil) for an unauthenticated request and a non-nil
// error only when resolution itself failed (e.g. the backing repo is
// unreachable) - callers must treat that as "unresolved", which is
// distinct from "unauthenticated".
//
// Clear is idempotent and safe to invoke concurrently; near-simultaneous
// authorization failures converge to the same absent state.
type Store interface {
	Get(r *http.Request) (*Session, error)
	Set(w http.ResponseWriter, r *http.Request, s Session) error
	Clear(w http.ResponseWriter, r *http.Request)
}

// RepoStore addresses a server-side Repo through an opaque session ID
// cookie. Used for the memory and redis backends.
type RepoStore struct {
	repo Repo
	ttl  time.Duration
	opts CookieOptions
}

var _ Store = (*RepoStore)(nil)

func NewRepoStore(repo Repo, ttl time.Duration, opts CookieOptions) *RepoStore {
	return &RepoStore{repo: repo, ttl: ttl, opts: opts}
}

func (rs *RepoStore) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	s, err := rs.repo.Get(r.Context(), cookie.Value)
	if kerrors.Is(err, kerrors.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, kerrors.Wrapf(err, "session resolution failed")
	}
	if !s.Valid() {
		return nil, nil
	}
	return s, nil
}

// Set writes the session under a freshly generated ID and rotates the
// cookie. Any prior session addressed by the request becomes unusable.
func (rs *RepoStore) Set(w http.ResponseWriter, r *http.Request, s Session) error {
	if prior, err := r.Cookie(CookieName); err == nil && prior.Value != "" {
		if err := rs.repo.Delete(r.Context(), prior.Value); err != nil {
			log.Debug().Msg("session store: failed to drop prior session on rotation")
		}
	}

	sessionID := uuid.New().String()
	if err := rs.repo.Upsert(r.Context(), sessionID, s, rs.ttl); err != nil {
		return kerrors.Wrapf(err, "session store: upsert")
	}

	SetCookie(w, sessionID, int(rs.ttl.Seconds()), rs.opts)
	return nil
}

func (rs *RepoStore) Clear(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := rs.repo.Delete(r.Context(), cookie.Value); err != nil {
			log.Debug().Msg("session store: failed to delete session on clear")
		}
	}
	ClearCookie(w, rs.opts)
}
