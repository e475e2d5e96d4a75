package authclient

import (
	"context"
	"net/http"
)

// RegisterUser creates a user and their registration in the configured
// application, scoped to the configured tenant.
//
// Provider-rejected input (password policy, duplicate email) comes back as a
// *ValidationError carrying the provider's field-level messages. Registration
// is not idempotent: nothing is retried, and a *TransportError after the
// request went out does not prove the account was not created.
func (c *Client) RegisterUser(ctx context.Context, reg RegistrationRequest) (*AuthResult, error) {
	payload := RegistrationRequestBody{
		Registration: RegistrationPayload{
			ApplicationID:        c.cfg.ApplicationID,
			Username:             reg.Username,
			TenantScopedUsername: reg.TenantScopedUsername,
		},
		User: RegistrationUser{
			Email:     reg.Email,
			FirstName: reg.FirstName,
			LastName:  reg.LastName,
			Password:  reg.Password,
		},
	}

	var resp RegistrationResponseBody
	err := c.postJSON(ctx, opRegister, "/api/user/registration", payload, &resp,
		http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		UserID:       resp.User.ID,
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    instantToTime(resp.TokenExpirationInstant),
	}, nil
}
