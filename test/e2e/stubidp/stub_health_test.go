package stubidp_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// healthBody mirrors the JSON shape of /livez and /readyz.
type healthBody struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Checks  *struct {
		Database string `json:"database"`
	} `json:"checks"`
}

// TestLivezEndpoint verifies the liveness check endpoint works on a fresh
// instance, without any provider headers.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	resp, err := http.Get(baseURL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Uptime)
	require.NotEmpty(t, health.Version)

	t.Logf("Livez endpoint is healthy (version %s, uptime %s)", health.Version, health.Uptime)
}

// TestReadyzEndpoint verifies the readiness check endpoint reports the
// database state.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	resp, err := http.Get(baseURL + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health healthBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.Equal(t, "ok", health.Status)
	require.NotNil(t, health.Checks, "Readiness should include dependency checks")
	require.Equal(t, "ok", health.Checks.Database)

	t.Logf("Readyz endpoint is healthy, database check ok")
}

// TestUnknownAPIKeyRejected verifies the provider guard: a request with the
// wrong API key is refused before reaching any handler.
func TestUnknownAPIKeyRejected(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/jwt/validate", nil)
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", "not-the-configured-key")
	req.Header.Set("X-FusionAuth-TenantId", testTenantID)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer drainAndClose(resp)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "Wrong API key should answer 401")

	t.Logf("Unknown API key rejected with 401")
}
