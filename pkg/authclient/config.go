package authclient

import (
	"net/url"
	"os"
	"strings"
)

// Environment variable names FromEnv reads. These are read by the surrounding
// application at process start, never by client operations.
const (
	EnvBaseURL       = "FUSION_AUTH_URL"
	EnvAPIKey        = "FUSION_AUTH_API_KEY"
	EnvApplicationID = "FUSION_AUTH_CLIENT_ID"
	EnvTenantID      = "FUSION_AUTH_TENANT_ID"
)

// Config identifies a provider instance and the calling application. All four
// fields are required; New rejects anything less.
type Config struct {
	// BaseURL is the root of the provider instance, e.g. "https://auth.example.com".
	BaseURL string

	// APIKey authenticates this application to the provider. It must be an
	// application-scoped key, never the provider's master key.
	APIKey string

	// ApplicationID scopes registrations and logins to one provider application.
	ApplicationID string

	// TenantID is sent on every request; the provider requires it even for a
	// default tenant.
	TenantID string
}

// Validate reports the first configuration violation as a *ConfigurationError.
// Field order is fixed so failures are deterministic.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return &ConfigurationError{Field: "BaseURL", Reason: "must not be empty"}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ConfigurationError{Field: "BaseURL", Reason: "must be an absolute http(s) URL"}
	}

	if strings.TrimSpace(c.APIKey) == "" {
		return &ConfigurationError{Field: "APIKey", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.ApplicationID) == "" {
		return &ConfigurationError{Field: "ApplicationID", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.TenantID) == "" {
		return &ConfigurationError{Field: "TenantID", Reason: "must not be empty"}
	}

	return nil
}

// FromEnv populates a Config from the FUSION_AUTH_* environment variables.
// It performs no validation; pass the result to New, which does.
func FromEnv() Config {
	return Config{
		BaseURL:       os.Getenv(EnvBaseURL),
		APIKey:        os.Getenv(EnvAPIKey),
		ApplicationID: os.Getenv(EnvApplicationID),
		TenantID:      os.Getenv(EnvTenantID),
	}
}
