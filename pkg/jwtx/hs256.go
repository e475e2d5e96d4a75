package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the smallest HS256 secret accepted, in bytes. Anything
// shorter undercuts the 256-bit signature.
const MinSecretLength = 32

var (
	ErrShortSecret = errors.New("jwtx: hs256 secret below minimum length")

	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")

	ErrIssuer   = errors.New("jwtx: issuer mismatch")
	ErrAudience = errors.New("jwtx: audience mismatch")
)

// HS256Signer signs access tokens with a shared secret, the provider's
// default signing mode.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates a signer from a shared secret.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	return &HS256Signer{secret: secret}, nil
}

// Sign turns claims into a signed compact JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates tokens produced by HS256Signer.
type HS256Verifier struct {
	secret []byte
	leeway time.Duration
	issuer string
}

// NewVerifierHS256 creates a verifier. Leeway absorbs clock skew on exp/nbf;
// issuer is enforced when non-empty.
func NewVerifierHS256(secret []byte, leeway time.Duration, issuer string) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrShortSecret
	}
	return &HS256Verifier{secret: secret, leeway: leeway, issuer: issuer}, nil
}

// Verify parses and validates the token string, returning its claims.
// Failures map onto the package sentinels so callers can branch with
// errors.Is without knowing the underlying jwt library.
func (v *HS256Verifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}

	return claims, nil
}

// mapParseError translates golang-jwt failure modes onto our sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return fmt.Errorf("%w: %w", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
