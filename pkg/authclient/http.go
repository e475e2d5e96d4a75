package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
)

// Headers stamped on every provider request. The tenant travels in the
// provider's own header; the API key gets a dedicated header because
// Authorization is reserved for the bearer token on validate.
const (
	headerTenant = "X-FusionAuth-TenantId"
	headerAPIKey = "X-Api-Key"
)

func (c *Client) url(path string) string {
	return c.cfg.BaseURL + path
}

// newRequest builds a provider request carrying the headers every call
// requires. All four operations construct their requests here; there is no
// other path to the wire.
func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerTenant, c.cfg.TenantID)
	req.Header.Set(headerAPIKey, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// send executes the exchange and drains the body. Anything that prevents an
// interpretable provider response comes back as *TransportError; status
// interpretation is left entirely to the caller and classify.
func (c *Client) send(op operation, req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: string(op), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: string(op), Err: err}
	}

	return resp.StatusCode, body, nil
}

// postJSON is the shared POST path: build, send, classify or decode.
func (c *Client) postJSON(ctx context.Context, op operation, path string, payload, target any, expected ...int) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}

	status, body, err := c.send(op, req)
	if err != nil {
		return err
	}

	if !slices.Contains(expected, status) {
		return classify(op, http.MethodPost, path, status, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return unexpectedShape(status, body)
	}

	return nil
}
