package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	kerrors "github.com/kay-express/admin-console/internal/errors"
	"github.com/kay-express/admin-console/session"
)

func testSession() session.Session {
	return session.Session{
		UserID:       "1",
		Name:         "Admin",
		Email:        "admin@kayexpress.test",
		Role:         "admin",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		CreatedAt:    time.Now(),
	}
}

// requestWithCookies builds a follow-up request carrying the cookies a
// previous response issued.
func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestRepoStore_SetGet(t *testing.T) {
	store := session.NewRepoStore(session.NewInMemoryRepo(), time.Hour, session.CookieOptions{})

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil), testSession()))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly)
	// The cookie value is an opaque ID, never token material.
	require.NotContains(t, cookies[0].Value, "access-token")

	got, err := store.Get(requestWithCookies(t, rec))
	require.NoError(t, err)
	require.True(t, got.Valid())
	require.Equal(t, "access-token", got.AccessToken)
	require.Equal(t, "Admin", got.Name)
}

func TestRepoStore_Get(t *testing.T) {
	t.Run("no cookie resolves to unauthenticated", func(t *testing.T) {
		store := session.NewRepoStore(session.NewInMemoryRepo(), time.Hour, session.CookieOptions{})
		got, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("unknown session id resolves to unauthenticated", func(t *testing.T) {
		store := session.NewRepoStore(session.NewInMemoryRepo(), time.Hour, session.CookieOptions{})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "gone"})

		got, err := store.Get(req)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("expired session resolves to unauthenticated", func(t *testing.T) {
		repo := session.NewInMemoryRepo()
		store := session.NewRepoStore(repo, time.Hour, session.CookieOptions{})
		require.NoError(t, repo.Upsert(context.Background(), "sid", testSession(), -time.Second))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid"})

		got, err := store.Get(req)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("repo failure is unresolved, not unauthenticated", func(t *testing.T) {
		store := session.NewRepoStore(failingRepo{}, time.Hour, session.CookieOptions{})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid"})

		got, err := store.Get(req)
		require.Error(t, err)
		require.Nil(t, got)
	})
}

func TestRepoStore_Clear(t *testing.T) {
	store := session.NewRepoStore(session.NewInMemoryRepo(), time.Hour, session.CookieOptions{})

	setRec := httptest.NewRecorder()
	require.NoError(t, store.Set(setRec, httptest.NewRequest(http.MethodPost, "/auth/login", nil), testSession()))
	req := requestWithCookies(t, setRec)

	clearRec := httptest.NewRecorder()
	store.Clear(clearRec, req)

	cookies := clearRec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)
	require.Equal(t, -1, cookies[0].MaxAge)

	got, err := store.Get(req)
	require.NoError(t, err)
	require.Nil(t, got)

	// Clearing again converges to the same absent state.
	store.Clear(httptest.NewRecorder(), req)
	got, err = store.Get(req)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRepoStore_SetRotatesSessionID(t *testing.T) {
	store := session.NewRepoStore(session.NewInMemoryRepo(), time.Hour, session.CookieOptions{})

	first := httptest.NewRecorder()
	require.NoError(t, store.Set(first, httptest.NewRequest(http.MethodPost, "/auth/login", nil), testSession()))
	firstReq := requestWithCookies(t, first)

	second := httptest.NewRecorder()
	require.NoError(t, store.Set(second, firstReq, testSession().WithTokens("rotated", "rotated-refresh")))

	// The old session ID no longer resolves.
	got, err := store.Get(firstReq)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = store.Get(requestWithCookies(t, second))
	require.NoError(t, err)
	require.True(t, got.Valid())
	require.Equal(t, "rotated", got.AccessToken)
}

// failingRepo simulates an unreachable backing store.
type failingRepo struct{}

func (failingRepo) Upsert(context.Context, string, session.Session, time.Duration) error {
	return errors.New("backend unreachable")
}

func (failingRepo) Get(context.Context, string) (*session.Session, error) {
	return nil, errors.New("backend unreachable")
}

func (failingRepo) Delete(context.Context, string) error {
	return errors.New("backend unreachable")
}

func TestInMemoryRepo(t *testing.T) {
	repo := session.NewInMemoryRepo()
	ctx := context.Background()

	t.Run("missing session reports not found", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		require.ErrorIs(t, err, kerrors.ErrSessionNotFound)
	})

	t.Run("upsert requires a session id", func(t *testing.T) {
		require.Error(t, repo.Upsert(ctx, "", testSession(), time.Hour))
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, "sid", testSession(), time.Hour))
		got, err := repo.Get(ctx, "sid")
		require.NoError(t, err)
		require.Equal(t, "access-token", got.AccessToken)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "sid"))
		require.NoError(t, repo.Delete(ctx, "sid"))
		_, err := repo.Get(ctx, "sid")
		require.ErrorIs(t, err, kerrors.ErrSessionNotFound)
	})
}
