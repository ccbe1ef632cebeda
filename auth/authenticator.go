package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	kerrors "github.com/kay-express/admin-console/internal/errors"
	"github.com/kay-express/admin-console/session"
	"github.com/kay-express/admin-console/upstream"
)

const (
	loginEndpoint   = "auth/admin/login/"
	refreshEndpoint = "auth/refresh/"

	defaultUserID = "1"
	defaultRole   = "admin"
)

// SignOutHook carries the forced sign-out side effect for a failed refresh
// exchange. It is the same effect an authorization failure produces.
type SignOutHook func(ctx context.Context)

// Authenticator exchanges operator credentials for a session and performs
// the explicit refresh-token exchange. Every failure mode of the login
// exchange collapses into ErrInvalidCredentials so transport detail never
// leaks to the login form.
type Authenticator struct {
	api       *upstream.Client
	onSignOut SignOutHook
	nowTime   func() time.Time
}

// Option defines a function type to modify the Authenticator.
type Option func(*Authenticator)

// WithSignOutHook registers the forced sign-out side effect for failed
// refresh exchanges.
func WithSignOutHook(hook SignOutHook) Option {
	return func(a *Authenticator) {
		a.onSignOut = hook
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(a *Authenticator) {
		a.nowTime = nowFunc
	}
}

func New(api *upstream.Client, options ...Option) *Authenticator {
	a := &Authenticator{
		api:     api,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  string      `json:"role"`
}

type loginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    *loginUser `json:"user"`
}

// Login exchanges a username/password pair for a session. Empty
// credentials short-circuit without a network call. The upstream identity
// block is optional: role defaults to "admin", display name and email
// default to the submitted username.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, kerrors.ErrInvalidCredentials
	}

	var res loginResponse
	if err := a.api.Post(ctx, loginEndpoint, loginRequest{Username: username, Password: password}, &res); err != nil {
		log.Debug().Err(err).Msg("login exchange failed")
		return nil, kerrors.ErrInvalidCredentials
	}

	// A success response without an access credential is malformed and
	// indistinguishable from a rejection as far as the operator is told.
	if res.Access == "" {
		log.Debug().Msg("login response missing access credential")
		return nil, kerrors.ErrInvalidCredentials
	}

	s := session.Session{
		UserID:       defaultUserID,
		Email:        username,
		Name:         username,
		Role:         defaultRole,
		AccessToken:  res.Access,
		RefreshToken: res.Refresh,
		CreatedAt:    a.nowTime(),
	}

	if res.User != nil {
		if id := res.User.ID.String(); id != "" {
			s.UserID = id
		}
		if res.User.Email != "" {
			s.Email = res.User.Email
		}
		if res.User.Name != "" {
			s.Name = res.User.Name
		}
		if res.User.Role != "" {
			s.Role = res.User.Role
		}
	}

	return &s, nil
}

func (a *Authenticator) signOut(ctx context.Context) {
	if a.onSignOut != nil {
		a.onSignOut(ctx)
	}
}
