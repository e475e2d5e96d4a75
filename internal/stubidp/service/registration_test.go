package service

import (
	"context"
	"testing"

	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues tokens", func(t *testing.T) {
		st := newTestStore(t)
		svc := newRegistrationService(t, st)

		session, err := svc.Register(ctx, RegistrationParams{
			Email:     "jane@acme.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Username:  "jane",
			Password:  "correct-horse-battery",
		})
		require.NoError(t, err)
		require.NotEmpty(t, session.User.ID)
		require.Equal(t, []string{"user"}, session.User.Roles)
		require.NotEmpty(t, session.Tokens.AccessToken)
		require.NotEmpty(t, session.Tokens.RefreshToken)
		require.False(t, session.Tokens.AccessExpiresAt.IsZero())

		// Verify the password was stored hashed, never in the clear.
		stored, err := st.Users().GetUserByEmail(ctx, "jane@acme.com")
		require.NoError(t, err)
		require.NotContains(t, stored.PasswordHash, "correct-horse-battery")
		require.NoError(t, cryptox.VerifyPassword("correct-horse-battery", stored.PasswordHash))

		// Verify the refresh token round-trips by fingerprint.
		rt, err := st.RefreshTokens().GetRefreshTokenByHash(ctx,
			cryptox.FingerprintToken(session.Tokens.RefreshToken))
		require.NoError(t, err)
		require.Equal(t, session.User.ID, rt.UserID)
		require.False(t, rt.Revoked)
	})

	t.Run("duplicate email", func(t *testing.T) {
		st := newTestStore(t)
		svc := newRegistrationService(t, st)

		params := RegistrationParams{Email: "dup@acme.com", Password: "password-one"}
		_, err := svc.Register(ctx, params)
		require.NoError(t, err)

		_, err = svc.Register(ctx, params)
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("duplicate email is case-insensitive", func(t *testing.T) {
		st := newTestStore(t)
		svc := newRegistrationService(t, st)

		_, err := svc.Register(ctx, RegistrationParams{Email: "mixed@acme.com", Password: "password-one"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegistrationParams{Email: "MIXED@ACME.COM", Password: "password-two"})
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("explicit roles override the default", func(t *testing.T) {
		st := newTestStore(t)
		svc := newRegistrationService(t, st)

		session, err := svc.Register(ctx, RegistrationParams{
			Email:    "admin@acme.com",
			Password: "password-one",
			Roles:    []string{"admin", "auditor"},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"admin", "auditor"}, session.User.Roles)
	})
}

func TestRegisterPolicy(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		params RegistrationParams
		field  string
		code   string
	}{
		{
			name:   "blank email",
			params: RegistrationParams{Password: "long-enough-password"},
			field:  "user.email",
			code:   "[blank]user.email",
		},
		{
			name:   "malformed email",
			params: RegistrationParams{Email: "not-an-address", Password: "long-enough-password"},
			field:  "user.email",
			code:   "[invalid]user.email",
		},
		{
			name:   "blank password",
			params: RegistrationParams{Email: "ok@acme.com"},
			field:  "user.password",
			code:   "[blank]user.password",
		},
		{
			name:   "short password",
			params: RegistrationParams{Email: "ok@acme.com", Password: "short"},
			field:  "user.password",
			code:   "[tooShort]user.password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			svc := newRegistrationService(t, st)

			_, err := svc.Register(ctx, tt.params)

			var policy *PolicyError
			require.ErrorAs(t, err, &policy)
			require.Contains(t, policy.Fields, tt.field)
			require.Equal(t, tt.code, policy.Fields[tt.field][0].Code)
		})
	}

	t.Run("all violations reported at once", func(t *testing.T) {
		st := newTestStore(t)
		svc := newRegistrationService(t, st)

		_, err := svc.Register(ctx, RegistrationParams{})

		var policy *PolicyError
		require.ErrorAs(t, err, &policy)
		require.Len(t, policy.Fields, 2)
		require.Contains(t, policy.Fields, "user.email")
		require.Contains(t, policy.Fields, "user.password")
	})

	t.Run("custom minimum length", func(t *testing.T) {
		st := newTestStore(t)
		svc := newRegistrationService(t, st)
		svc.MinPasswordLength = 16

		_, err := svc.Register(ctx, RegistrationParams{
			Email:    "ok@acme.com",
			Password: "twelve-chars",
		})

		var policy *PolicyError
		require.ErrorAs(t, err, &policy)
		require.Equal(t, "[tooShort]user.password", policy.Fields["user.password"][0].Code)
	})
}
