package authclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// ValidateToken asks the provider whether token is currently valid.
//
// The request is a GET with the token in the Authorization header; the
// provider accepts no other shape. A 405 therefore means the integration is
// miswired and surfaces as *ProtocolMismatchError rather than anything
// token-related.
//
// An expired or unknown token is an expected outcome, not an error: the
// provider's 401 becomes TokenValidation{Valid: false} with a nil error.
func (c *Client) ValidateToken(ctx context.Context, token string) (*TokenValidation, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/jwt/validate", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	status, body, err := c.send(opValidate, req)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var resp ValidateResponseBody
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, unexpectedShape(status, body)
		}
		return &TokenValidation{Valid: true, Claims: resp.JWT}, nil

	case http.StatusUnauthorized:
		return &TokenValidation{Valid: false}, nil

	default:
		return nil, classify(opValidate, http.MethodGet, "/api/jwt/validate", status, body)
	}
}
