package config

import "strings"

// BackendConfig describes the remote API that performs the real
// authentication, authorization and report hosting.
type BackendConfig interface {
	GetBackendBaseURL() string
	GetImageHostBaseURL() string
}

type Backend struct{}

var _ BackendConfig = Backend{}

// GetBackendBaseURL returns the base URL of the backend HTTP API
// (e.g., "https://api.example.com"). Trailing slashes are stripped so
// request paths can be appended directly.
func (Backend) GetBackendBaseURL() string {
	return strings.TrimRight(GetEnv("BACKEND_API_BASE_URL", "http://localhost:8000"), "/")
}

// GetImageHostBaseURL returns the URL prefix that daily-report image IDs
// are appended to when building the dashboard image source.
func (Backend) GetImageHostBaseURL() string {
	return GetEnv("IMAGE_HOST_BASE_URL", "https://drive.google.com/uc?export=view&id=")
}
