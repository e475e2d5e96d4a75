package authclient

import (
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds each exchange when the caller does not inject an
// *http.Client of their own.
const defaultTimeout = 10 * time.Second

// Client is a configured client for one provider instance, application and
// tenant. It holds no mutable state and is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a Client with a default HTTP transport. It fails fast with a
// *ConfigurationError if any Config field is missing or malformed; a Client
// that constructs successfully can never send a request missing the tenant or
// API-key header.
func New(cfg Config) (*Client, error) {
	return NewWithHTTPClient(cfg, nil)
}

// NewWithHTTPClient is New with an injected transport. Timeouts, proxies and
// connection pooling are the transport's business, not the client's. A nil
// httpClient gets the same default transport New uses.
func NewWithHTTPClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// BaseURL returns the normalized provider base URL, mainly for logs and
// diagnostics. The API key has no accessor on purpose.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}
