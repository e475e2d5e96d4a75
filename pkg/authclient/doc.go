/*
Package authclient provides a typed client for a FusionAuth-compatible
identity provider.

# Overview

The package wraps four identity operations behind one configured client:
user registration, login, token validation and token refresh. It owns no
protocol, storage or token logic of its own; everything hard lives inside the
provider. What the package does own is the request shaping (headers, methods,
payloads the provider insists on) and the translation of the provider's
inconsistent error surface into a small typed taxonomy.

	cfg := authclient.Config{
		BaseURL:       "https://auth.example.com",
		APIKey:        apiKey,
		ApplicationID: appID,
		TenantID:      tenantID,
	}
	client, err := authclient.New(cfg)
	if err != nil {
		// *ConfigurationError: a field is missing or malformed
	}

	result, err := client.Login(ctx, "dave@example.com", password)
	if err != nil {
		// typed failure, see Error taxonomy below
	}
	validation, err := client.ValidateToken(ctx, result.Token)

# Configuration

Config is validated once, at construction, and is immutable afterwards.
Operations never consult the environment; FromEnv exists for the surrounding
application to populate a Config at process start from FUSION_AUTH_URL,
FUSION_AUTH_API_KEY, FUSION_AUTH_CLIENT_ID and FUSION_AUTH_TENANT_ID.

Every request the client sends carries the tenant header and the API-key
header. Both are stamped by the shared request builder, so a request missing
either cannot be constructed. The Authorization header is reserved for the
bearer token on ValidateToken.

# The validate contract

ValidateToken issues an HTTP GET with the token in the Authorization header.
The provider's validate endpoint accepts nothing else: a POST comes back as a
405, which the client surfaces as *ProtocolMismatchError so a miswired
integration is not mistaken for an invalid token. An expired or unknown token
is not an error at all; it returns TokenValidation{Valid: false} with a nil
error, because an expired token is an expected outcome.

# Error taxonomy

Each failure kind is its own exported type, detected with errors.As:

  - *ConfigurationError: construction-time only, never at call time
  - *ValidationError: provider rejected input, with field-level messages
  - *AuthenticationError: invalid credentials, deliberately uninformative
  - *AccountLockedError: provider-reported lockout
  - *ProtocolMismatchError: wrong method or shape against the provider
  - *TokenNotRefreshableError: refresh of an expired or revoked token
  - *TransportError: no interpretable provider response; wraps the cause
  - *UnexpectedProviderError: unrecognized status or shape, with raw detail

All mapping happens at one boundary. A *TransportError wraps its underlying
cause, so errors.Is(err, context.DeadlineExceeded) still works for callers
that aborted the exchange themselves.

Error values never contain the API key or a password. Provider-generated
messages (password policy text, duplicate-email notices) pass through as-is.

# Retries

None. Registration is not idempotent, so retrying it risks duplicate
accounts; the client refuses to guess which operations are safe. Callers
owning an idempotency story can layer retries on top.

# Concurrency

The client is stateless between calls and safe for concurrent use. Connection
reuse and timeouts belong to the injected *http.Client; pass one through
NewWithHTTPClient or accept the 10-second default.
*/
package authclient
