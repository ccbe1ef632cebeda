package guard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kay-express/admin-console/guard"
)

func TestDecide(t *testing.T) {
	t.Run("unauthenticated on protected route redirects to login", func(t *testing.T) {
		d := guard.Decide("/bookings", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionRedirect, d.Action)
		require.Equal(t, guard.LoginPath, d.Target)
	})

	t.Run("unauthenticated on login allows", func(t *testing.T) {
		d := guard.Decide("/login", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionAllow, d.Action)
	})

	t.Run("authenticated on login redirects to landing", func(t *testing.T) {
		d := guard.Decide("/login", guard.StateAuthenticated)
		require.Equal(t, guard.ActionRedirect, d.Action)
		require.Equal(t, guard.LandingPath, d.Target)
	})

	t.Run("authenticated on protected route allows", func(t *testing.T) {
		d := guard.Decide("/trips", guard.StateAuthenticated)
		require.Equal(t, guard.ActionAllow, d.Action)
	})

	t.Run("landing page is protected", func(t *testing.T) {
		d := guard.Decide("/", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionRedirect, d.Action)
		require.Equal(t, guard.LoginPath, d.Target)
	})

	t.Run("public agent registration allows without a session", func(t *testing.T) {
		d := guard.Decide("/agents/register", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionAllow, d.Action)
	})

	t.Run("agent listing is still protected", func(t *testing.T) {
		d := guard.Decide("/agents", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionRedirect, d.Action)
	})

	t.Run("healthz allows without a session", func(t *testing.T) {
		d := guard.Decide("/healthz", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionAllow, d.Action)
	})

	t.Run("login form post allows without a session", func(t *testing.T) {
		d := guard.Decide("/auth/login", guard.StateUnauthenticated)
		require.Equal(t, guard.ActionAllow, d.Action)
	})

	t.Run("unresolved state defers regardless of path", func(t *testing.T) {
		for _, path := range []string{"/", "/login", "/bookings", "/healthz"} {
			d := guard.Decide(path, guard.StateUnresolved)
			require.Equal(t, guard.ActionDefer, d.Action, path)
		}
	})

	t.Run("login sub-paths count as login", func(t *testing.T) {
		d := guard.Decide("/login/", guard.StateAuthenticated)
		require.Equal(t, guard.ActionRedirect, d.Action)
		require.Equal(t, guard.LandingPath, d.Target)
	})
}

func TestIsPublic(t *testing.T) {
	require.True(t, guard.IsPublic("/agents/register"))
	require.True(t, guard.IsPublic("/healthz"))
	require.True(t, guard.IsPublic("/css/site.css"))
	require.False(t, guard.IsPublic("/agents"))
	require.False(t, guard.IsPublic("/profile"))
}
