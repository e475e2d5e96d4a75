package authclient

import (
	"context"
	"net/http"
)

// Login authenticates a user by email (or username) and password against the
// configured application.
//
// Invalid credentials come back as a *AuthenticationError that is
// deliberately uninformative: the provider does not say whether the account
// exists, and this client never tries to infer it. A provider-side lockout is
// a *AccountLockedError.
func (c *Client) Login(ctx context.Context, loginID, password string) (*AuthResult, error) {
	payload := LoginRequestBody{
		LoginID:       loginID,
		Password:      password,
		ApplicationID: c.cfg.ApplicationID,
	}

	var resp LoginResponseBody
	err := c.postJSON(ctx, opLogin, "/api/login", payload, &resp, http.StatusOK)
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
