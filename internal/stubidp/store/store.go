package store

import (
	"context"
	"errors"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh
	// rotation). The caller MUST call Commit() or Rollback() on the result.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate checks. The lookup
	// is case-insensitive.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// A duplicate email maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// RecordLoginFailure sets the failed-attempt counter and, when the
	// lockout policy trips, the lockout expiry.
	RecordLoginFailure(ctx context.Context, userID string, attempts int, lockedUntil *time.Time) error

	// ResetLoginFailures clears the failed-attempt counter and any lockout
	// after a successful login.
	ResetLoginFailures(ctx context.Context, userID string) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record by token fingerprint,
	// including revoked and expired rows so callers can tell the cases
	// apart.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked and records the rotation successor.
	RevokeRefreshToken(ctx context.Context, id, replacedBy string) error

	// RevokeAllUserRefreshTokens bulk revocation for a user (e.g., lockout).
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens is housekeeping; rows past their expiry
	// plus the grace window are removed.
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) error
}
