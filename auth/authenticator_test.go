package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kay-express/admin-console/auth"
	kerrors "github.com/kay-express/admin-console/internal/errors"
	"github.com/kay-express/admin-console/upstream"
)

// loginBackend is a scripted stand-in for the booking API's login endpoint.
type loginBackend struct {
	hits     atomic.Int32
	status   int
	response string
}

func (b *loginBackend) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/admin/login/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotEmpty(t, body["username"])

		w.WriteHeader(b.status)
		w.Write([]byte(b.response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthenticator_Login(t *testing.T) {
	t.Run("full identity block is honoured", func(t *testing.T) {
		backend := &loginBackend{
			status: http.StatusOK,
			response: `{
				"access": "acc-1",
				"refresh": "ref-1",
				"user": {"id": 42, "email": "kofi@kayexpress.test", "name": "Kofi", "role": "superadmin"}
			}`,
		}
		authn := auth.New(upstream.New(backend.serve(t).URL))

		sess, err := authn.Login(context.Background(), "kofi", "pw")
		require.NoError(t, err)
		require.True(t, sess.Valid())
		require.Equal(t, "42", sess.UserID)
		require.Equal(t, "kofi@kayexpress.test", sess.Email)
		require.Equal(t, "Kofi", sess.Name)
		require.Equal(t, "superadmin", sess.Role)
		require.Equal(t, "acc-1", sess.AccessToken)
		require.Equal(t, "ref-1", sess.RefreshToken)
		require.False(t, sess.CreatedAt.IsZero())
	})

	t.Run("missing identity block falls back to defaults", func(t *testing.T) {
		backend := &loginBackend{
			status:   http.StatusOK,
			response: `{"access": "acc-2", "refresh": "ref-2"}`,
		}
		authn := auth.New(upstream.New(backend.serve(t).URL))

		sess, err := authn.Login(context.Background(), "ama", "pw")
		require.NoError(t, err)
		require.Equal(t, "1", sess.UserID)
		require.Equal(t, "admin", sess.Role)
		require.Equal(t, "ama", sess.Name)
		require.Equal(t, "ama", sess.Email)
	})

	t.Run("empty credentials fail without a network call", func(t *testing.T) {
		backend := &loginBackend{status: http.StatusOK, response: `{"access": "acc"}`}
		authn := auth.New(upstream.New(backend.serve(t).URL))

		_, err := authn.Login(context.Background(), "", "pw")
		require.ErrorIs(t, err, kerrors.ErrInvalidCredentials)

		_, err = authn.Login(context.Background(), "   ", "pw")
		require.ErrorIs(t, err, kerrors.ErrInvalidCredentials)

		_, err = authn.Login(context.Background(), "admin", "")
		require.ErrorIs(t, err, kerrors.ErrInvalidCredentials)

		require.Zero(t, backend.hits.Load())
	})

	t.Run("rejected credentials collapse to the generic failure", func(t *testing.T) {
		backend := &loginBackend{status: http.StatusUnauthorized, response: `{"detail": "wrong password"}`}
		authn := auth.New(upstream.New(backend.serve(t).URL))

		_, err := authn.Login(context.Background(), "admin", "wrong")
		require.ErrorIs(t, err, kerrors.ErrInvalidCredentials)
	})

	t.Run("success response without access token is a failure", func(t *testing.T) {
		backend := &loginBackend{status: http.StatusOK, response: `{"refresh": "only-refresh"}`}
		authn := auth.New(upstream.New(backend.serve(t).URL))

		_, err := authn.Login(context.Background(), "admin", "pw")
		require.ErrorIs(t, err, kerrors.ErrInvalidCredentials)
	})

	t.Run("api outage collapses to the generic failure", func(t *testing.T) {
		authn := auth.New(upstream.New("http://127.0.0.1:1"))

		_, err := authn.Login(context.Background(), "admin", "pw")
		require.ErrorIs(t, err, kerrors.ErrInvalidCredentials)
	})
}
