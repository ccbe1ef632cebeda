package config

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

// APIConfig describes how to reach the remote booking API.
type APIConfig interface {
	GetAPIBaseURL() string
}

// SessionConfig describes how operator sessions are persisted.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionBackend() string
	GetSessionTTL() string
	GetRedisAddr() string
}

type mainConfig struct {
	EnvVars
	API
	SessionVars
}

func New() Config {
	return mainConfig{}
}
