package domain

import "time"

// TokenPair is what a successful registration, login, or refresh returns:
// a signed JWT access token plus an opaque refresh token.
type TokenPair struct {
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
	RefreshTokenID  string
}

// RefreshToken models the stored refresh token record. Only the SHA-256
// fingerprint of the opaque value is persisted; the raw token exists solely
// in the response that carried it.
type RefreshToken struct {
	ID         string // ULID
	UserID     string
	TokenHash  string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy string // ID of the successor token after rotation, empty otherwise
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
