// Package guard decides, per navigation attempt, whether a request may
// render or must be redirected. It is a pure function of the requested
// path and the resolved authentication state so it can be tested without
// an HTTP server in the loop.
package guard

import "strings"

// Route targets the guard redirects to.
const (
	LoginPath   = "/login"
	LandingPath = "/"
)

// publicPrefixes are reachable without a session besides the login page:
// the public agent registration form, health checks and static assets.
var publicPrefixes = []string{
	"/auth/login",
	"/agents/register",
	"/healthz",
	"/css/",
	"/js/",
}

// State is the resolved authentication state for one navigation attempt.
// StateUnresolved means session resolution itself failed (not "no
// session") and the decision must be deferred rather than redirecting
// prematurely.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateUnresolved
)

// Action is what the caller must do with the request.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
	ActionDefer
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Action Action
	Target string // set when Action == ActionRedirect
}

// Decide evaluates the two-state gate:
//
//	unauthenticated + non-login route  -> redirect to login
//	unauthenticated + login route      -> allow
//	authenticated   + login route      -> redirect to the landing route
//	authenticated   + any other route  -> allow
//
// Public paths are allowed regardless of state. An unresolved state
// defers: the caller decides how to fail, the guard never guesses.
func Decide(path string, state State) Decision {
	if state == StateUnresolved {
		return Decision{Action: ActionDefer}
	}

	if isLogin(path) {
		if state == StateAuthenticated {
			return Decision{Action: ActionRedirect, Target: LandingPath}
		}
		return Decision{Action: ActionAllow}
	}

	if IsPublic(path) {
		return Decision{Action: ActionAllow}
	}

	if state == StateAuthenticated {
		return Decision{Action: ActionAllow}
	}
	return Decision{Action: ActionRedirect, Target: LoginPath}
}

// IsPublic reports whether the path is reachable without a session
// (excluding the login page, which has its own rule).
func IsPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isLogin(path string) bool {
	return path == LoginPath || strings.HasPrefix(path, LoginPath+"/")
}
