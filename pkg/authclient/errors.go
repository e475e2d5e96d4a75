package authclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBodyBytes caps how much provider body an UnexpectedProviderError
// carries. Enough for diagnostics, not enough to flood a log pipeline.
const maxErrorBodyBytes = 2048

// operation names appear in error text and nowhere else.
type operation string

const (
	opRegister operation = "register"
	opLogin    operation = "login"
	opValidate operation = "validate"
	opRefresh  operation = "refresh"
)

// ============================================================================
// Error taxonomy
// ============================================================================
//
// One exported type per failure kind, no shared base type. Callers branch with
// errors.As; the concrete type is the tag. Construction failures use
// ConfigurationError, everything else is produced by classify, the single
// boundary between the provider's wire surface and typed results.

// ConfigurationError reports a missing or malformed Config field. It is only
// ever returned at construction, never from an operation.
type ConfigurationError struct {
	// Field is the offending Config field name.
	Field string

	// Reason describes the violation. It never contains the field's value.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("authclient: invalid configuration: %s %s", e.Field, e.Reason)
}

// ValidationError reports provider-rejected input, e.g. a password that fails
// policy or a duplicate email. Messages are the provider's own.
type ValidationError struct {
	// Status is the HTTP status the provider answered with.
	Status int

	// FieldErrors maps a wire field path (e.g. "user.email") to its messages.
	FieldErrors map[string][]FieldMessage

	// GeneralErrors holds messages not tied to a single field.
	GeneralErrors []FieldMessage
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("authclient: provider rejected input")

	for field, msgs := range e.FieldErrors {
		for _, m := range msgs {
			fmt.Fprintf(&b, "; %s: %s", field, m.Message)
		}
	}
	for _, m := range e.GeneralErrors {
		fmt.Fprintf(&b, "; %s", m.Message)
	}

	return b.String()
}

// Messages returns the provider's messages for one wire field, or nil.
func (e *ValidationError) Messages(field string) []string {
	msgs := e.FieldErrors[field]
	if len(msgs) == 0 {
		return nil
	}

	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Message)
	}
	return out
}

// AuthenticationError reports invalid credentials. The provider's response is
// opaque about which factor was wrong and this error stays that way.
type AuthenticationError struct {
	Status int
}

func (e *AuthenticationError) Error() string {
	return "authclient: authentication failed"
}

// AccountLockedError reports a provider-side lockout. The credentials may
// even have been correct; the account is not currently allowed to log in.
type AccountLockedError struct {
	Status int
}

func (e *AccountLockedError) Error() string {
	return "authclient: account is locked"
}

// ProtocolMismatchError reports that the provider rejected the request shape
// itself, typically 405 from using the wrong HTTP method. It signals a bug in
// the integration, not bad user input or an invalid token.
type ProtocolMismatchError struct {
	Method string
	Path   string
	Status int
}

func (e *ProtocolMismatchError) Error() string {
	return fmt.Sprintf("authclient: provider rejected %s %s with status %d: client/provider contract mismatch",
		e.Method, e.Path, e.Status)
}

// TokenNotRefreshableError reports a refresh attempt on a token the provider
// no longer recognizes: expired past its window, revoked, or already rotated.
type TokenNotRefreshableError struct {
	Status int
}

func (e *TokenNotRefreshableError) Error() string {
	return "authclient: token is no longer refreshable"
}

// TransportError reports a failure with no interpretable provider response:
// DNS, dial, TLS, a cancelled context, or a body that could not be read.
type TransportError struct {
	// Op is the operation that failed: register, login, validate or refresh.
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("authclient: %s: transport failure: %v", e.Op, e.Err)
}

// Unwrap exposes the cause so errors.Is(err, context.DeadlineExceeded) and
// friends keep working.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnexpectedProviderError reports a status or body shape the client does not
// recognize. It carries the raw evidence for diagnostics.
type UnexpectedProviderError struct {
	Status int

	// Body is the provider's response body, capped at maxErrorBodyBytes.
	Body []byte
}

func (e *UnexpectedProviderError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("authclient: unexpected provider response: status %d", e.Status)
	}
	return fmt.Sprintf("authclient: unexpected provider response: status %d: %s", e.Status, e.Body)
}

// ============================================================================
// Classification boundary
// ============================================================================

// classify maps a non-success provider response onto the taxonomy. It is the
// only place raw status codes and bodies are interpreted; operations call it
// and return the result untouched.
//
// A few statuses mean different things per endpoint (404 from login is
// "invalid credentials", 404 from refresh is "unknown refresh token"), so the
// operation is part of the mapping key.
func classify(op operation, method, path string, status int, body []byte) error {
	// Wrong method or shape outranks everything else; the provider never got
	// far enough to evaluate the request.
	if status == http.StatusMethodNotAllowed {
		return &ProtocolMismatchError{Method: method, Path: path, Status: status}
	}

	switch op {
	case opLogin:
		switch status {
		case http.StatusNotFound:
			// The provider answers 404 with no body for both unknown email
			// and wrong password. Preserve the opacity.
			return &AuthenticationError{Status: status}
		case http.StatusConflict, http.StatusLocked:
			return &AccountLockedError{Status: status}
		}

	case opRefresh:
		switch status {
		case http.StatusNotFound, http.StatusGone:
			return &TokenNotRefreshableError{Status: status}
		}
	}

	// Field-level rejection bodies share one shape across endpoints.
	if status == http.StatusBadRequest {
		var eb ErrorBody
		if err := json.Unmarshal(body, &eb); err == nil &&
			(len(eb.FieldErrors) > 0 || len(eb.GeneralErrors) > 0) {
			return &ValidationError{
				Status:        status,
				FieldErrors:   eb.FieldErrors,
				GeneralErrors: eb.GeneralErrors,
			}
		}
	}

	return &UnexpectedProviderError{Status: status, Body: truncateBody(body)}
}

// unexpectedShape reports a success status whose body did not decode.
func unexpectedShape(status int, body []byte) error {
	return &UnexpectedProviderError{Status: status, Body: truncateBody(body)}
}

func truncateBody(body []byte) []byte {
	if len(body) <= maxErrorBodyBytes {
		return body
	}
	return body[:maxErrorBodyBytes]
}
