package authclient

import (
	"context"
	"net/http"
)

// RefreshToken exchanges a refresh token for a renewed token pair.
//
// A token the provider no longer recognizes (expired past its window,
// revoked, or already rotated away) comes back as *TokenNotRefreshableError.
// The returned AuthResult has no UserID; the renewed token itself carries the
// subject.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	payload := RefreshRequestBody{RefreshToken: refreshToken}

	var resp RefreshResponseBody
	err := c.postJSON(ctx, opRefresh, "/api/jwt/refresh", payload, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
	}, nil
}
