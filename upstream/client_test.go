package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	kerrors "github.com/kay-express/admin-console/internal/errors"
	"github.com/kay-express/admin-console/upstream"
)

func TestClient_BearerAttachment(t *testing.T) {
	t.Run("token from the source is attached on every request", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		client := upstream.New(srv.URL,
			upstream.WithTokenSource(func(context.Context) string { return "T" }))

		var out struct {
			OK bool `json:"ok"`
		}
		require.NoError(t, client.Get(context.Background(), "booking/buses/", &out))
		require.Equal(t, "Bearer T", gotAuth)
		require.True(t, out.OK)
	})

	t.Run("empty token means no Authorization header", func(t *testing.T) {
		var gotAuth string
		var hadHeader bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, hadHeader = r.Header["Authorization"]
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := upstream.New(srv.URL,
			upstream.WithTokenSource(func(context.Context) string { return "" }))

		require.NoError(t, client.Get(context.Background(), "agents/register/", nil))
		require.Empty(t, gotAuth)
		require.False(t, hadHeader)
	})
}

func TestClient_AuthorizationFailure(t *testing.T) {
	t.Run("401 fires the hook and propagates the failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"token expired"}`))
		}))
		defer srv.Close()

		var hookCalls atomic.Int32
		client := upstream.New(srv.URL,
			upstream.WithTokenSource(func(context.Context) string { return "stale" }),
			upstream.WithAuthFailureHook(func(context.Context) { hookCalls.Add(1) }))

		err := client.Get(context.Background(), "booking/trips/", nil)
		require.Error(t, err)
		require.True(t, upstream.IsAuthorizationFailure(err))
		require.ErrorIs(t, err, kerrors.ErrAuthorizationExpired)
		require.Equal(t, int32(1), hookCalls.Load())

		var statusErr *upstream.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusUnauthorized, statusErr.Code)
	})

	t.Run("non-401 failures never fire the hook", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"seat already booked"}`))
		}))
		defer srv.Close()

		var hookCalls atomic.Int32
		client := upstream.New(srv.URL,
			upstream.WithAuthFailureHook(func(context.Context) { hookCalls.Add(1) }))

		err := client.Post(context.Background(), "booking/bookings/", map[string]int{"trip_id": 1}, nil)
		require.Error(t, err)
		require.False(t, upstream.IsAuthorizationFailure(err))
		require.Zero(t, hookCalls.Load())

		var statusErr *upstream.StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusBadRequest, statusErr.Code)
		require.Contains(t, statusErr.Body, "seat already booked")
	})

	t.Run("connection dropped mid-body surfaces as a transport error", func(t *testing.T) {
		// Promise a large body but deliver a fragment, so the read fails
		// with an unexpected EOF.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "1024")
			w.Write([]byte(`{"truncat`))
		}))
		defer srv.Close()

		var hookCalls atomic.Int32
		client := upstream.New(srv.URL,
			upstream.WithAuthFailureHook(func(context.Context) { hookCalls.Add(1) }))

		var out map[string]any
		err := client.Get(context.Background(), "booking/buses/", &out)
		require.Error(t, err)
		require.False(t, upstream.IsAuthorizationFailure(err))
		require.Zero(t, hookCalls.Load())
		require.Empty(t, out)
	})

	t.Run("transport errors never fire the hook", func(t *testing.T) {
		var hookCalls atomic.Int32
		client := upstream.New("http://127.0.0.1:1",
			upstream.WithAuthFailureHook(func(context.Context) { hookCalls.Add(1) }))

		err := client.Get(context.Background(), "booking/buses/", nil)
		require.Error(t, err)
		require.False(t, upstream.IsAuthorizationFailure(err))
		require.Zero(t, hookCalls.Load())
	})
}

func TestClient_RequestShape(t *testing.T) {
	var gotMethod, gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := upstream.New(srv.URL + "/api")

	t.Run("paths join the base url with a single slash", func(t *testing.T) {
		require.NoError(t, client.Get(context.Background(), "/booking/routes/", nil))
		require.Equal(t, "/api/booking/routes/", gotPath)
	})

	t.Run("bodies go out as json", func(t *testing.T) {
		require.NoError(t, client.Post(context.Background(), "booking/routes/", map[string]string{"origin": "Accra"}, nil))
		require.Equal(t, http.MethodPost, gotMethod)
		require.Equal(t, "application/json", gotContentType)
	})

	t.Run("delete sends no body", func(t *testing.T) {
		require.NoError(t, client.Delete(context.Background(), "booking/routes/3/", nil))
		require.Equal(t, http.MethodDelete, gotMethod)
		require.Empty(t, gotContentType)
	})
}

func TestStatusError_Error(t *testing.T) {
	withBody := &upstream.StatusError{Code: 400, Body: "bad input"}
	require.Contains(t, withBody.Error(), "400")
	require.Contains(t, withBody.Error(), "bad input")

	noBody := &upstream.StatusError{Code: 500}
	require.Contains(t, noBody.Error(), "Internal Server Error")
}
