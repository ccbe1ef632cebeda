package auth

import (
	"context"

	"github.com/rs/zerolog/log"

	kerrors "github.com/kay-express/admin-console/internal/errors"
	"github.com/kay-express/admin-console/session"
)

// TokenPair is the result of a successful refresh exchange. The caller is
// responsible for writing it back through the session store (preserving
// the identity fields); the exchange itself mutates nothing.
type TokenPair struct {
	Access  string
	Refresh string
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Refresh performs the explicit refresh-token exchange. It is only ever
// invoked by application code - never from inside the request pipeline -
// and it never retries or chains into itself.
//
// A session without a refresh token fails immediately with no network
// call. A failed or malformed exchange fires the forced sign-out hook and
// returns ErrRefreshFailed.
func (a *Authenticator) Refresh(ctx context.Context, current *session.Session) (*TokenPair, error) {
	if current == nil || current.RefreshToken == "" {
		return nil, kerrors.ErrNoRefreshToken
	}

	var res refreshResponse
	if err := a.api.Post(ctx, refreshEndpoint, refreshRequest{Refresh: current.RefreshToken}, &res); err != nil {
		log.Debug().Err(err).Msg("refresh exchange failed")
		a.signOut(ctx)
		return nil, kerrors.ErrRefreshFailed
	}

	if res.Access == "" || res.Refresh == "" {
		log.Debug().Msg("refresh response missing token pair")
		a.signOut(ctx)
		return nil, kerrors.ErrRefreshFailed
	}

	return &TokenPair{Access: res.Access, Refresh: res.Refresh}, nil
}
