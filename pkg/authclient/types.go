package authclient

import "time"

// ============================================================================
// Operation results
// ============================================================================

// AuthResult is the outcome of a successful registration, login or refresh.
type AuthResult struct {
	// UserID identifies the authenticated user. Empty after RefreshToken,
	// which exchanges tokens without re-identifying the user.
	UserID string

	// Token is the bearer credential for subsequent requests. The client
	// treats it as opaque.
	Token string

	// RefreshToken renews Token via RefreshToken. Empty when the provider
	// did not issue one.
	RefreshToken string

	// ExpiresAt is when Token stops validating. Zero when the provider did
	// not report an expiry.
	ExpiresAt time.Time
}

// TokenValidation is the outcome of ValidateToken. An invalid or expired
// token yields Valid=false with a nil error; only transport and contract
// failures are errors.
type TokenValidation struct {
	Valid bool

	// Claims is the provider's view of the token payload, present only when
	// Valid is true.
	Claims map[string]any
}

// RegistrationRequest is the caller-facing input to RegisterUser. The
// application and tenant come from the client's Config, not from here.
type RegistrationRequest struct {
	Email     string
	FirstName string
	LastName  string
	Password  string

	// Username is an optional login alias alongside the email.
	Username string

	// TenantScopedUsername asks the provider to enforce username uniqueness
	// per tenant rather than per deployment.
	TenantScopedUsername bool
}

// ============================================================================
// Wire shapes
// ============================================================================
//
// These mirror the provider's API bodies exactly. They are exported because
// conforming servers (and test doubles) build their responses from the same
// definitions the client decodes with.

// UserPayload is the provider's user object, reduced to the fields this
// client consumes.
type UserPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Username  string `json:"username,omitempty"`
	Active    bool   `json:"active"`
}

// RegistrationPayload is the application-scoped half of a registration.
type RegistrationPayload struct {
	ApplicationID        string   `json:"applicationId"`
	Username             string   `json:"username,omitempty"`
	TenantScopedUsername bool     `json:"tenantScopedUsername,omitempty"`
	Roles                []string `json:"roles,omitempty"`
}

// RegistrationUser is the user half of a registration request.
type RegistrationUser struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Password  string `json:"password"`
}

// RegistrationRequestBody is POST /api/user/registration.
type RegistrationRequestBody struct {
	Registration RegistrationPayload `json:"registration"`
	User         RegistrationUser    `json:"user"`
}

// RegistrationResponseBody is the success response to a registration.
type RegistrationResponseBody struct {
	User                   UserPayload         `json:"user"`
	Registration           RegistrationPayload `json:"registration"`
	Token                  string              `json:"token,omitempty"`
	RefreshToken           string              `json:"refreshToken,omitempty"`
	TokenExpirationInstant int64               `json:"tokenExpirationInstant,omitempty"`
}

// LoginRequestBody is POST /api/login.
type LoginRequestBody struct {
	LoginID       string `json:"loginId"`
	Password      string `json:"password"`
	ApplicationID string `json:"applicationId"`
}

// LoginResponseBody is the success response to a login.
type LoginResponseBody struct {
	User                   UserPayload `json:"user"`
	Token                  string      `json:"token"`
	RefreshToken           string      `json:"refreshToken,omitempty"`
	TokenExpirationInstant int64       `json:"tokenExpirationInstant,omitempty"`
}

// ValidateResponseBody is the success response to GET /api/jwt/validate.
type ValidateResponseBody struct {
	JWT map[string]any `json:"jwt"`
}

// RefreshRequestBody is POST /api/jwt/refresh.
type RefreshRequestBody struct {
	RefreshToken string `json:"refreshToken"`
	Token        string `json:"token,omitempty"`
}

// RefreshResponseBody is the success response to a refresh.
type RefreshResponseBody struct {
	Token          string `json:"token"`
	RefreshToken   string `json:"refreshToken,omitempty"`
	RefreshTokenID string `json:"refreshTokenId,omitempty"`
}

// ErrorBody is the provider's field-rejection shape, shared across endpoints
// that return one at all.
type ErrorBody struct {
	FieldErrors   map[string][]FieldMessage `json:"fieldErrors,omitempty"`
	GeneralErrors []FieldMessage            `json:"generalErrors,omitempty"`
}

// FieldMessage is a single coded message inside an ErrorBody.
type FieldMessage struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// instantToTime converts the provider's unix-millisecond instants, mapping
// absent (zero) instants to the zero time.
func instantToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
