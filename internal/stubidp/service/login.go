package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/lanternsec/fusionkit/pkg/jwtx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

// Defaults for the lockout policy when the configuration leaves it unset.
const (
	DefaultMaxFailedAttempts = 5
	DefaultLockoutDuration   = 15 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserLocked         = errors.New("user_locked")
)

// decoyHash is an argon2 hash of a throwaway random value. Login attempts
// against unknown emails verify the password against it so the work factor,
// and therefore the response timing, matches a real credential check.
var decoyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize128))
	if err != nil {
		panic(err)
	}
	return h
})

// LoginService authenticates credentials and enforces the lockout policy.
type LoginService struct {
	Store  store.Store
	Tokens *TokenService

	MaxFailedAttempts int           // 0 means DefaultMaxFailedAttempts
	LockoutDuration   time.Duration // 0 means DefaultLockoutDuration
}

// Login verifies the credentials and issues a token pair. Both unknown
// emails and wrong passwords come back as ErrInvalidCredentials; the two are
// never distinguishable from the outside. Crossing the failed-attempt
// threshold locks the account and revokes its outstanding refresh tokens.
func (s *LoginService) Login(ctx context.Context, loginID, password string) (*Session, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	// 1. Look up the account. Unknown emails still burn an argon2
	// verification so the caller cannot time-probe for existence.
	u, err := s.Store.Users().GetUserByEmail(ctx, loginID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, decoyHash())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. A locked account rejects before any password work.
	if u.Locked(now) {
		return nil, ErrUserLocked
	}

	// 3. Verify the password; on failure count the attempt and lock when
	// the threshold trips.
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return nil, s.recordFailure(ctx, u.ID, u.FailedAttempts+1, now)
	}

	if !u.Active {
		return nil, ErrInvalidCredentials
	}

	// 4. Success clears any accumulated failures.
	if u.FailedAttempts > 0 || u.LockedUntil != nil {
		if err := s.Store.Users().ResetLoginFailures(ctx, u.ID); err != nil {
			return nil, err
		}
	}

	pair, err := s.Tokens.IssuePair(ctx, s.Store, u, jwtx.AuthTypePassword, now)
	if err != nil {
		return nil, err
	}

	l.Info("login succeeded", "user_id", u.ID)
	return &Session{User: u, Tokens: pair}, nil
}

// recordFailure persists a failed attempt. When the attempt crosses the
// lockout threshold the account is locked and every outstanding refresh
// token is revoked in the same transaction, ending open sessions alongside
// new logins.
func (s *LoginService) recordFailure(ctx context.Context, userID string, attempts int, now time.Time) error {
	l := slogx.FromContext(ctx)

	maxAttempts := s.MaxFailedAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxFailedAttempts
	}
	lockFor := s.LockoutDuration
	if lockFor <= 0 {
		lockFor = DefaultLockoutDuration
	}

	if attempts < maxAttempts {
		if err := s.Store.Users().RecordLoginFailure(ctx, userID, attempts, nil); err != nil {
			return err
		}
		return ErrInvalidCredentials
	}

	lockedUntil := now.Add(lockFor)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().RecordLoginFailure(ctx, userID, attempts, &lockedUntil); err != nil {
			return err
		}
		return tx.RefreshTokens().RevokeAllUserRefreshTokens(ctx, userID)
	})
	if err != nil {
		return err
	}

	l.Warn("account locked after repeated failures",
		"user_id", userID,
		"attempts", attempts,
		"locked_until", lockedUntil,
	)
	return ErrUserLocked
}
