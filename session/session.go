package session

import "time"

// Session represents one authenticated administrative operator for the
// lifetime of a browser session. The token pair is an opaque credential
// issued by the booking API; token values are never logged or rendered.
type Session struct {
	// Core identity
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`

	// Tokens (access authorizes requests, refresh rotates the pair)
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session represents an authenticated operator.
// A session is either fully absent or carries both a user ID and an
// access token; anything in between is treated as absent.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != "" && s.AccessToken != ""
}

// WithTokens returns a copy of the session carrying a rotated token pair.
// Identity fields are preserved; only a successful login or an explicit,
// successful refresh may produce the input to this method.
func (s Session) WithTokens(access, refresh string) Session {
	s.AccessToken = access
	s.RefreshToken = refresh
	return s
}
