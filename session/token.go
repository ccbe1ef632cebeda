package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiry reads the exp claim out of the access token without
// verifying its signature. Verification is the booking API's job; the
// console only surfaces the expiry on the profile page and uses it to hint
// that an explicit refresh is due. Opaque (non-JWT) tokens report no
// expiry and are still usable.
func (s *Session) AccessTokenExpiry() (time.Time, bool) {
	if s == nil || s.AccessToken == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// RefreshDue reports whether the access token expires within the given
// window. It is a hint for the manual refresh action only; the request
// pipeline never refreshes on its own.
func (s *Session) RefreshDue(window time.Duration, now time.Time) bool {
	exp, ok := s.AccessTokenExpiry()
	if !ok {
		return false
	}
	return now.Add(window).After(exp)
}
