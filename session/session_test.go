package session_test

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kay-express/admin-console/session"
)

// jwtWithExp builds an unsigned JWT carrying only an exp claim. The console
// never verifies signatures, it only reads the expiry hint.
func jwtWithExp(exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, exp.Unix())))
	return header + "." + claims + ".sig"
}

func TestSession_Valid(t *testing.T) {
	t.Run("nil session is invalid", func(t *testing.T) {
		var s *session.Session
		require.False(t, s.Valid())
	})

	t.Run("complete session is valid", func(t *testing.T) {
		s := &session.Session{UserID: "1", AccessToken: "tok"}
		require.True(t, s.Valid())
	})

	t.Run("missing access token is invalid", func(t *testing.T) {
		s := &session.Session{UserID: "1"}
		require.False(t, s.Valid())
	})

	t.Run("missing user id is invalid", func(t *testing.T) {
		s := &session.Session{AccessToken: "tok"}
		require.False(t, s.Valid())
	})
}

func TestSession_WithTokens(t *testing.T) {
	original := session.Session{
		UserID:       "7",
		Name:         "Ama",
		Email:        "ama@example.com",
		Role:         "admin",
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	rotated := original.WithTokens("new-access", "new-refresh")

	require.Equal(t, "new-access", rotated.AccessToken)
	require.Equal(t, "new-refresh", rotated.RefreshToken)
	require.Equal(t, original.UserID, rotated.UserID)
	require.Equal(t, original.Name, rotated.Name)
	require.Equal(t, original.Email, rotated.Email)
	require.Equal(t, original.Role, rotated.Role)
	require.Equal(t, original.CreatedAt, rotated.CreatedAt)

	// The receiver is untouched.
	require.Equal(t, "old-access", original.AccessToken)
}

func TestSession_AccessTokenExpiry(t *testing.T) {
	t.Run("reads exp from a JWT access token", func(t *testing.T) {
		exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
		s := &session.Session{UserID: "1", AccessToken: jwtWithExp(exp)}

		got, ok := s.AccessTokenExpiry()
		require.True(t, ok)
		require.True(t, got.Equal(exp))
	})

	t.Run("opaque token reports no expiry", func(t *testing.T) {
		s := &session.Session{UserID: "1", AccessToken: "not-a-jwt"}
		_, ok := s.AccessTokenExpiry()
		require.False(t, ok)
	})

	t.Run("nil session reports no expiry", func(t *testing.T) {
		var s *session.Session
		_, ok := s.AccessTokenExpiry()
		require.False(t, ok)
	})
}

func TestSession_RefreshDue(t *testing.T) {
	now := time.Now()

	t.Run("due when expiry falls inside the window", func(t *testing.T) {
		s := &session.Session{UserID: "1", AccessToken: jwtWithExp(now.Add(5 * time.Minute))}
		require.True(t, s.RefreshDue(10*time.Minute, now))
	})

	t.Run("not due when expiry is beyond the window", func(t *testing.T) {
		s := &session.Session{UserID: "1", AccessToken: jwtWithExp(now.Add(time.Hour))}
		require.False(t, s.RefreshDue(10*time.Minute, now))
	})

	t.Run("never due for opaque tokens", func(t *testing.T) {
		s := &session.Session{UserID: "1", AccessToken: "opaque"}
		require.False(t, s.RefreshDue(10*time.Minute, now))
	})
}
