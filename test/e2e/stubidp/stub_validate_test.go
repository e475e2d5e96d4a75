package stubidp_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidateIssuedToken tests token validation:
// 1. Register a user to obtain a token
// 2. Validate it and verify the claims identify the user and application
// 3. Validate a forged token and verify the negative outcome is not an error
func TestValidateIssuedToken(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	client := newClient(t, baseURL)
	ctx := context.Background()

	reg := registerUser(t, client, "validate@e2e.test")

	validation, err := client.ValidateToken(ctx, reg.Token)
	require.NoError(t, err, "Validation of a freshly issued token should succeed")
	require.True(t, validation.Valid, "Freshly issued token should be valid")
	require.Equal(t, reg.UserID, validation.Claims["sub"], "Subject claim should be the user id")
	require.Equal(t, testAppID, validation.Claims["applicationId"], "Token should be scoped to the application")
	require.Equal(t, "validate@e2e.test", validation.Claims["email"])

	t.Logf("Token validated, claims: sub=%v applicationId=%v", validation.Claims["sub"], validation.Claims["applicationId"])

	// A forged token is an expected negative outcome: Valid=false, nil error.
	validation, err = client.ValidateToken(ctx, "forged.token.value")
	require.NoError(t, err, "An invalid token is not an operational failure")
	require.False(t, validation.Valid)
	require.Nil(t, validation.Claims, "Invalid tokens should carry no claims")

	t.Logf("Forged token reported invalid without error")
}

// TestValidateMethodContract verifies the provider answers 405 to any method
// other than GET on the validate endpoint. Conforming clients depend on this
// to surface their own miswiring as a distinct failure.
func TestValidateMethodContract(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	resp := rawRequest(t, http.MethodPost, baseURL+"/api/jwt/validate", nil)
	defer drainAndClose(resp)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, "POST should answer 405")

	resp2 := rawRequest(t, http.MethodPut, baseURL+"/api/jwt/validate", nil)
	defer drainAndClose(resp2)
	require.Equal(t, http.StatusMethodNotAllowed, resp2.StatusCode, "PUT should answer 405")

	// GET without a bearer token is 401: right method, no credential.
	resp3 := rawRequest(t, http.MethodGet, baseURL+"/api/jwt/validate", nil)
	defer drainAndClose(resp3)
	require.Equal(t, http.StatusUnauthorized, resp3.StatusCode, "GET without a token should answer 401")

	t.Logf("Validate endpoint enforces GET-only access")
}
