package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kay-express/admin-console/server"
)

func TestChainMiddleware(t *testing.T) {
	var order []string
	mw := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	handler := server.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mw("first"), mw("second"))

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestSecurityAndRecovery(t *testing.T) {
	_, apiURL := newBookingAPI(t)
	s := newTestServer(t, apiURL)

	t.Run("frame security headers are set on every page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
		require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
		require.Equal(t, "frame-ancestors 'self'", rec.Header().Get("Content-Security-Policy"))
	})

	t.Run("panicking handlers answer 500 instead of dropping the connection", func(t *testing.T) {
		panicking := server.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}, s.HTMLMiddleware()...)

		rec := httptest.NewRecorder()
		panicking(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
