package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/kay-express/admin-console/guard"
	kerrors "github.com/kay-express/admin-console/internal/errors"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Username string // Preserve username on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		panic("Failed to parse login template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
// (POST /auth/login). Whatever went wrong - rejected credentials, a
// malformed response, the API being down - the operator sees the same
// generic message.
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		sess, err := s.authn.Login(r.Context(), username, password)
		if err != nil {
			s.renderLoginError(w, r, "Invalid username or password", username)
			return
		}

		if err := s.store.Set(w, r, *sess); err != nil {
			log.Err(err).Msg("Failed to persist session after login")
			s.renderLoginError(w, r, "Login failed, please try again", username)
			return
		}

		http.Redirect(w, r, guard.LandingPath, http.StatusSeeOther)
	}
}

// LogoutHandler clears the session (GET /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.store.Clear(w, r)
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
	}
}

// RefreshHandler performs the explicit refresh-token exchange
// (POST /auth/refresh). This is the only place the exchange is invoked;
// the request pipeline never refreshes on its own. The interrupted action,
// if any, is not replayed.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())

		pair, err := s.authn.Refresh(r.Context(), sess)
		if err != nil {
			if kerrors.Is(err, kerrors.ErrNoRefreshToken) {
				http.Redirect(w, r, RouteProfile+"?error="+url.QueryEscape("No refresh token on this session"), http.StatusSeeOther)
				return
			}
			// The sign-out hook already cleared the session.
			http.Redirect(w, r, guard.LoginPath+"?error="+url.QueryEscape("Session expired, please sign in again"), http.StatusSeeOther)
			return
		}

		if err := s.store.Set(w, r, sess.WithTokens(pair.Access, pair.Refresh)); err != nil {
			log.Err(err).Msg("Failed to persist rotated token pair")
			s.store.Clear(w, r)
			http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, RouteProfile+"?msg="+url.QueryEscape("Session refreshed"), http.StatusSeeOther)
	}
}

// renderLoginError redirects to the login page with an error message
func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	redirectURL := guard.LoginPath + "?error=" + url.QueryEscape(errorMsg)
	if username != "" {
		redirectURL += "&username=" + url.QueryEscape(username)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
