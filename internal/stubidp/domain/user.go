package domain

import "time"

// User is a registered account within the provider's single tenant.
type User struct {
	ID           string // ULID
	Email        string
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string // argon2 encoded
	Roles        []string
	Active       bool

	FailedAttempts int        // consecutive failed logins since the last success
	LockedUntil    *time.Time // nil when the account is not locked

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether the account is locked out at the given instant.
func (u User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
