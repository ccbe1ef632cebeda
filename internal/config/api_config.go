package config

import "strings"

const apiBaseURLVar = "API_BASE_URL"

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the base URL of the remote booking API.
// All upstream endpoints are resolved relative to this URL, so it always
// ends with a trailing slash.
func (API) GetAPIBaseURL() string {
	base := GetEnv(apiBaseURLVar, "http://localhost:8000/api/")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
