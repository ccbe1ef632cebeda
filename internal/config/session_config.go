package config

const (
	sessionSecretVar  = "SESSION_SECRET"
	sessionBackendVar = "SESSION_BACKEND"
	sessionTTLVar     = "SESSION_TTL"
	redisAddrVar      = "REDIS_ADDR"
)

// Session backends selectable via SESSION_BACKEND.
const (
	SessionBackendCookie = "cookie"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type SessionVars struct{}

var _ SessionConfig = SessionVars{}

// GetSessionSecret returns the key material used to seal session cookies.
// An empty value is only acceptable in DEV; the server derives a fixed
// development key in that case.
func (SessionVars) GetSessionSecret() string {
	return GetEnv(sessionSecretVar, "")
}

func (SessionVars) GetSessionBackend() string {
	return GetEnv(sessionBackendVar, SessionBackendCookie)
}

// GetSessionTTL returns the session lifetime as a Go duration string.
func (SessionVars) GetSessionTTL() string {
	return GetEnv(sessionTTLVar, "12h")
}

func (SessionVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}
