package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Overridable per deployment, these only apply when the
// configuration leaves them unset.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Authentication type values recorded in issued tokens.
const (
	AuthTypePassword     = "PASSWORD"
	AuthTypeRefreshToken = "REFRESH_TOKEN"
	AuthTypeRegistration = "REGISTRATION"
)

// Claims are the access-token claims the identity provider issues. Field
// names follow the provider's wire shape so that tokens round-trip through
// the validate endpoint unchanged.
type Claims struct {
	jwt.RegisteredClaims

	// ApplicationID identifies the application the token was issued for.
	ApplicationID string `json:"applicationId,omitempty"`

	// TenantID is the issuing tenant ("tid" on the wire).
	TenantID string `json:"tid,omitempty"`

	// Roles granted by the user's registration in the application.
	Roles []string `json:"roles,omitempty"`

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`

	// EmailVerified reports whether the address has been confirmed.
	EmailVerified bool `json:"email_verified,omitempty"`

	// AuthenticationType records how the token was obtained, e.g. PASSWORD
	// for a login or REFRESH_TOKEN for a renewal.
	AuthenticationType string `json:"authenticationType,omitempty"`

	// PreferredUsername is the display username, when one exists.
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// AccessClaimsParams carries everything NewAccessClaims needs. A struct
// because the positional version grew unreadable.
type AccessClaimsParams struct {
	Subject            string // user id
	Issuer             string
	ApplicationID      string
	TenantID           string
	Email              string
	EmailVerified      bool
	PreferredUsername  string
	Roles              []string
	AuthenticationType string
	TTL                time.Duration
	Now                time.Time
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(p AccessClaimsParams) Claims {
	if p.TTL <= 0 {
		p.TTL = DefaultAccessTokenTTL
	}
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.Issuer,
			Subject:   p.Subject,
			Audience:  jwt.ClaimStrings{p.ApplicationID},
			IssuedAt:  jwt.NewNumericDate(p.Now),
			NotBefore: jwt.NewNumericDate(p.Now),
			ExpiresAt: jwt.NewNumericDate(p.Now.Add(p.TTL)),
			ID:        NewJTI(),
		},
		ApplicationID:      p.ApplicationID,
		TenantID:           p.TenantID,
		Email:              p.Email,
		EmailVerified:      p.EmailVerified,
		PreferredUsername:  p.PreferredUsername,
		Roles:              p.Roles,
		AuthenticationType: p.AuthenticationType,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateApplication checks the token was issued for the given application,
// via either the audience or the applicationId claim.
func (c *Claims) ValidateApplication(applicationID string) error {
	if applicationID == "" {
		return nil // nothing to enforce
	}

	if c.ApplicationID == applicationID {
		return nil
	}
	if slices.Contains(c.Audience, applicationID) {
		return nil
	}

	return ErrAudience
}

// ToMap renders the claims as the generic mapping the validate endpoint
// returns. Zero-valued optional fields are omitted, matching the signed
// payload byte-for-byte in content.
func (c *Claims) ToMap() (map[string]any, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
