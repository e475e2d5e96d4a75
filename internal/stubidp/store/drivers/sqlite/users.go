package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
	"github.com/lanternsec/fusionkit/internal/stubidp/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, first_name, last_name, username, password_hash,
	roles, active, failed_attempts, locked_until, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, first_name, last_name, username, password_hash,
			roles, active, failed_attempts, locked_until, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.Username, u.PasswordHash,
		joinRoles(u.Roles), u.Active, u.FailedAttempts,
		mapOptionalTime(u.LockedUntil), u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) RecordLoginFailure(
	ctx context.Context,
	userID string,
	attempts int,
	lockedUntil *time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET failed_attempts = ?, locked_until = ?, updated_at = ?
		WHERE id = ?`,
		attempts, mapOptionalTime(lockedUntil), time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) ResetLoginFailures(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET failed_attempts = 0, locked_until = NULL, updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u           domain.User
		roles       string
		lockedUntil sql.NullTime
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Username, &u.PasswordHash,
		&roles, &u.Active, &u.FailedAttempts, &lockedUntil, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Roles = splitRoles(roles)
	u.LockedUntil = mapNullTimePtr(lockedUntil)
	return u, nil
}
