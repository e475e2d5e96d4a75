package authclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testAPIKey   = "bf69486b-4733-4470-a592-f1bfce7af580"
	testAppID    = "3c219e58-ed0e-4b18-ad48-f4f92793ae32"
	testTenantID = "30663132-6464-6665-3032-326466613934"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		APIKey:        testAPIKey,
		ApplicationID: testAppID,
		TenantID:      testTenantID,
	}
}

// newTestClient spins up a mock provider and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	return client
}

// recordedRequest is what the client actually put on the wire.
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// recorder captures every request a mock provider saw, so assertions run on
// the test goroutine after the operation returns.
type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (rec *recorder) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		rec.mu.Lock()
		rec.reqs = append(rec.reqs, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		rec.mu.Unlock()

		next(w, r)
	}
}

func (rec *recorder) all() []recordedRequest {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return slices.Clone(rec.reqs)
}

func (rec *recorder) one(t *testing.T) recordedRequest {
	t.Helper()

	reqs := rec.all()
	require.Len(t, reqs, 1)
	return reqs[0]
}

// requireProviderHeaders asserts the two headers every request must carry.
func requireProviderHeaders(t *testing.T, req recordedRequest) {
	t.Helper()

	require.Equal(t, testTenantID, req.Header.Get(headerTenant))
	require.Equal(t, testAPIKey, req.Header.Get(headerAPIKey))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		client, err := New(testConfig("https://auth.example.com"))
		require.NoError(t, err)
		require.NotNil(t, client)
		require.Equal(t, "https://auth.example.com", client.BaseURL())
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		client, err := New(testConfig("https://auth.example.com/"))
		require.NoError(t, err)
		require.Equal(t, "https://auth.example.com", client.BaseURL())
	})

	t.Run("rejects bad config", func(t *testing.T) {
		tests := []struct {
			name  string
			mut   func(*Config)
			field string
		}{
			{"empty base URL", func(c *Config) { c.BaseURL = "" }, "BaseURL"},
			{"whitespace base URL", func(c *Config) { c.BaseURL = "   " }, "BaseURL"},
			{"base URL without scheme", func(c *Config) { c.BaseURL = "auth.example.com" }, "BaseURL"},
			{"base URL with unsupported scheme", func(c *Config) { c.BaseURL = "ftp://auth.example.com" }, "BaseURL"},
			{"empty API key", func(c *Config) { c.APIKey = "" }, "APIKey"},
			{"empty application id", func(c *Config) { c.ApplicationID = "" }, "ApplicationID"},
			{"empty tenant id", func(c *Config) { c.TenantID = "" }, "TenantID"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := testConfig("https://auth.example.com")
				tt.mut(&cfg)

				client, err := New(cfg)
				require.Nil(t, client)

				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				require.Equal(t, tt.field, cfgErr.Field)
			})
		}
	})

	t.Run("configuration error never echoes the value", func(t *testing.T) {
		cfg := testConfig("not a url")
		_, err := New(cfg)
		require.Error(t, err)
		require.NotContains(t, err.Error(), testAPIKey)
		require.NotContains(t, err.Error(), "not a url")
	})
}

func TestNewWithHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("nil client falls back to default", func(t *testing.T) {
		client, err := NewWithHTTPClient(testConfig("https://auth.example.com"), nil)
		require.NoError(t, err)
		require.NotNil(t, client.httpClient)
	})

	t.Run("injected client is used", func(t *testing.T) {
		custom := &http.Client{}
		client, err := NewWithHTTPClient(testConfig("https://auth.example.com"), custom)
		require.NoError(t, err)
		require.Same(t, custom, client.httpClient)
	})

	t.Run("still validates config", func(t *testing.T) {
		_, err := NewWithHTTPClient(Config{}, &http.Client{})

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://auth.example.com")
	t.Setenv(EnvAPIKey, testAPIKey)
	t.Setenv(EnvApplicationID, testAppID)
	t.Setenv(EnvTenantID, testTenantID)

	cfg := FromEnv()
	require.Equal(t, "https://auth.example.com", cfg.BaseURL)
	require.Equal(t, testAPIKey, cfg.APIKey)
	require.Equal(t, testAppID, cfg.ApplicationID)
	require.Equal(t, testTenantID, cfg.TenantID)

	client, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestFromEnvMissingVariables(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://auth.example.com")
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvApplicationID, testAppID)
	t.Setenv(EnvTenantID, testTenantID)

	_, err := New(FromEnv())

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "APIKey", cfgErr.Field)
}

// TestEveryRequestCarriesProviderHeaders drives all four operations through a
// recording provider and checks the tenant and API-key headers on each
// request that reached the wire.
func TestEveryRequestCarriesProviderHeaders(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	client := newTestClient(t, rec.wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/registration":
			writeJSON(w, http.StatusOK, RegistrationResponseBody{
				User:  UserPayload{ID: "user-1", Email: "sam@example.com"},
				Token: "tok",
			})
		case "/api/login":
			writeJSON(w, http.StatusOK, LoginResponseBody{
				User:  UserPayload{ID: "user-1"},
				Token: "tok",
			})
		case "/api/jwt/validate":
			writeJSON(w, http.StatusOK, ValidateResponseBody{JWT: map[string]any{"sub": "user-1"}})
		case "/api/jwt/refresh":
			writeJSON(w, http.StatusOK, RefreshResponseBody{Token: "tok2", RefreshToken: "ref2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	_, err := client.RegisterUser(ctx, RegistrationRequest{Email: "sam@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = client.Login(ctx, "sam@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = client.ValidateToken(ctx, "tok")
	require.NoError(t, err)

	_, err = client.RefreshToken(ctx, "ref")
	require.NoError(t, err)

	reqs := rec.all()
	require.Len(t, reqs, 4)
	for _, req := range reqs {
		requireProviderHeaders(t, req)
		require.Equal(t, "application/json", req.Header.Get("Accept"))
	}
}
