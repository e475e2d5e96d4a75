package stubidp_test

import (
	"context"
	"testing"
	"time"

	"github.com/lanternsec/fusionkit/pkg/authclient"
	"github.com/stretchr/testify/require"
)

// TestRegisterNewUser tests the registration flow:
// 1. Register a fresh user
// 2. Verify the issued token pair and expiry
// 3. Re-register the same email and verify the typed duplicate rejection
func TestRegisterNewUser(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	client := newClient(t, baseURL)

	res := registerUser(t, client, "register@e2e.test")
	require.False(t, res.ExpiresAt.IsZero(), "Token expiry should be reported")
	require.True(t, res.ExpiresAt.After(time.Now()), "Token expiry should be in the future")

	t.Logf("Registration successful")
	t.Logf("User ID: %s", res.UserID)

	// Same email again is a validation failure naming the field, not a
	// transport error and not a silent success.
	_, err := client.RegisterUser(context.Background(), authclient.RegistrationRequest{
		Email:    "register@e2e.test",
		Password: testPassword,
	})

	var vErr *authclient.ValidationError
	require.ErrorAs(t, err, &vErr, "Duplicate registration should be a ValidationError")
	require.NotEmpty(t, vErr.Messages("user.email"), "Rejection should name user.email")
	require.Equal(t, "[duplicate]user.email", vErr.FieldErrors["user.email"][0].Code)

	t.Logf("Duplicate registration rejected: %v", vErr.Messages("user.email"))
}

// TestRegisterPolicyViolations verifies the provider rejects a malformed
// email and an under-length password in one response, naming both fields.
func TestRegisterPolicyViolations(t *testing.T) {
	baseURL, cleanup := setupStubContainer(t)
	defer cleanup()

	client := newClient(t, baseURL)

	_, err := client.RegisterUser(context.Background(), authclient.RegistrationRequest{
		Email:    "no-at-sign",
		Password: "short",
	})

	var vErr *authclient.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.NotEmpty(t, vErr.Messages("user.email"), "Rejection should name user.email")
	require.NotEmpty(t, vErr.Messages("user.password"), "Rejection should name user.password")

	t.Logf("Policy rejection messages: email=%v password=%v",
		vErr.Messages("user.email"), vErr.Messages("user.password"))
}
