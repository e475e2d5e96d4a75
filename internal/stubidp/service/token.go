package service

import (
	"context"
	"errors"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/lanternsec/fusionkit/pkg/idx"
	"github.com/lanternsec/fusionkit/pkg/jwtx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

var (
	ErrTokenNotFound = errors.New("token_not_found")
	ErrTokenExpired  = errors.New("token_expired")
	ErrTokenRevoked  = errors.New("token_revoked")
	ErrTokenInvalid  = errors.New("token_invalid")
)

// TokenService issues, validates, and rotates tokens. Access tokens are
// HS256 JWTs; refresh tokens are opaque values stored by fingerprint only.
type TokenService struct {
	Store    store.Store
	Signer   *jwtx.HS256Signer
	Verifier *jwtx.HS256Verifier

	Issuer        string
	ApplicationID string
	TenantID      string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Session is the outcome of a successful authentication: the account plus a
// freshly issued token pair.
type Session struct {
	User   domain.User
	Tokens domain.TokenPair
}

// IssuePair signs an access token for the user and persists a new refresh
// token through st, which may be the root store or an open transaction when
// the caller needs the pair issued atomically with other writes.
func (s *TokenService) IssuePair(
	ctx context.Context,
	st store.Store,
	u domain.User,
	authType string,
	now time.Time,
) (domain.TokenPair, error) {
	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:            u.ID,
		Issuer:             s.Issuer,
		ApplicationID:      s.ApplicationID,
		TenantID:           s.TenantID,
		Email:              u.Email,
		EmailVerified:      true,
		PreferredUsername:  u.Username,
		Roles:              u.Roles,
		AuthenticationType: authType,
		TTL:                s.AccessTTL,
		Now:                now,
	})

	accessToken, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		ExpiresAt: now.Add(s.RefreshTTL),
	}
	if err := st.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:     accessToken,
		AccessExpiresAt: now.Add(s.AccessTTL),
		RefreshToken:    refreshOpaque,
		RefreshTokenID:  rt.ID,
	}, nil
}

// Validate verifies a compact JWT and returns its claims. An expired token
// comes back as ErrTokenExpired; anything else unverifiable (bad signature,
// malformed, wrong application) as ErrTokenInvalid.
func (s *TokenService) Validate(ctx context.Context, token string) (*jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if err := claims.ValidateApplication(s.ApplicationID); err != nil {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// Refresh exchanges an opaque refresh token for a renewed pair, rotating the
// stored record: the presented token is revoked and linked to its successor
// in the same transaction, so a replayed token is detectable as revoked.
func (s *TokenService) Refresh(ctx context.Context, refreshOpaque string) (*Session, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	// 1. Look up the persisted record by token fingerprint.
	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	// 2. A revoked token is a rotation replay or a lockout casualty; either
	// way it is gone for good.
	if rt.Revoked {
		l.Warn("revoked refresh token presented", "token_id", rt.ID)
		return nil, ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return nil, ErrTokenExpired
	}

	// 3. Load the owning user. A locked or deactivated account cannot renew;
	// the failure stays indistinguishable from an unknown token.
	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	if !u.Active || u.Locked(now) {
		return nil, ErrTokenNotFound
	}

	// 4. Sign the renewed access token.
	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:            u.ID,
		Issuer:             s.Issuer,
		ApplicationID:      s.ApplicationID,
		TenantID:           s.TenantID,
		Email:              u.Email,
		EmailVerified:      true,
		PreferredUsername:  u.Username,
		Roles:              u.Roles,
		AuthenticationType: jwtx.AuthTypeRefreshToken,
		TTL:                s.AccessTTL,
		Now:                now,
	})
	accessToken, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	// 5. Rotate: revoke the presented token and create its successor
	// atomically.
	newOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	newRT := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(newOpaque),
		ExpiresAt: now.Add(s.RefreshTTL),
	}

	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, rt.ID, newRT.ID); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, newRT)
	}); err != nil {
		return nil, err
	}

	return &Session{
		User: u,
		Tokens: domain.TokenPair{
			AccessToken:     accessToken,
			AccessExpiresAt: now.Add(s.AccessTTL),
			RefreshToken:    newOpaque,
			RefreshTokenID:  newRT.ID,
		},
	}, nil
}
