package upstream

import (
	"fmt"
	"net/http"

	kerrors "github.com/kay-express/admin-console/internal/errors"
)

// StatusError is returned for any non-2xx upstream response. The trimmed
// body is preserved so validation errors from the booking API can be shown
// to the operator unchanged.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error (%d): %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("api error (%d): %s", e.Code, e.Body)
}

// Unwrap maps authorization failures onto the shared sentinel so callers
// can match with errors.Is without importing this package's types.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return kerrors.ErrAuthorizationExpired
	}
	return nil
}

// IsAuthorizationFailure reports whether err carries an upstream 401.
func IsAuthorizationFailure(err error) bool {
	return kerrors.Is(err, kerrors.ErrAuthorizationExpired)
}
