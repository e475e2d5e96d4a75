package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/lanternsec/fusionkit/pkg/idx"
	"github.com/lanternsec/fusionkit/pkg/jwtx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

// DefaultMinPasswordLength applies when the configuration leaves the policy
// unset.
const DefaultMinPasswordLength = 8

var ErrDuplicateEmail = errors.New("duplicate_email")

// FieldMessage is one coded policy message attached to a request field.
type FieldMessage struct {
	Code    string
	Message string
}

// PolicyError reports registration policy failures keyed by wire field path
// ("user.email", "user.password").
type PolicyError struct {
	Fields map[string][]FieldMessage
}

func (e *PolicyError) Error() string { return "policy_violation" }

// RegistrationService creates accounts and hands back an initial token pair.
type RegistrationService struct {
	Store  store.Store
	Tokens *TokenService

	MinPasswordLength int      // 0 means DefaultMinPasswordLength
	DefaultRoles      []string // granted when the registration names none
}

type RegistrationParams struct {
	Email     string
	FirstName string
	LastName  string
	Username  string
	Password  string
	Roles     []string
}

// Register validates the request against the password and email policy,
// creates the user, and issues tokens, all within one transaction so a
// half-created account can never be observed.
func (s *RegistrationService) Register(ctx context.Context, p RegistrationParams) (*Session, error) {
	now := time.Now().UTC()
	l := slogx.FromContext(ctx)

	p.Email = strings.TrimSpace(p.Email)
	p.Username = strings.TrimSpace(p.Username)

	// 1. Policy checks. All violations are collected so the response can
	// name every offending field at once.
	if policyErr := s.checkPolicy(p); policyErr != nil {
		return nil, policyErr
	}

	// 2. Hash the password before entering the transaction; argon2 work has
	// no business holding a write lock.
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	roles := p.Roles
	if len(roles) == 0 {
		roles = s.DefaultRoles
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Username:     p.Username,
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
	}

	// 3. Create the user and issue the initial pair atomically. The unique
	// index on email backstops the read-then-write duplicate check.
	var session *Session
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByEmail(ctx, u.Email)
		if err == nil {
			return ErrDuplicateEmail
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Users().CreateUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateEmail
			}
			return err
		}

		pair, err := s.Tokens.IssuePair(ctx, tx, u, jwtx.AuthTypeRegistration, now)
		if err != nil {
			return err
		}

		session = &Session{User: u, Tokens: pair}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("user registered", "user_id", u.ID, "roles", roles)
	return session, nil
}

func (s *RegistrationService) checkPolicy(p RegistrationParams) *PolicyError {
	minLen := s.MinPasswordLength
	if minLen <= 0 {
		minLen = DefaultMinPasswordLength
	}

	fields := map[string][]FieldMessage{}

	switch {
	case p.Email == "":
		fields["user.email"] = append(fields["user.email"], FieldMessage{
			Code:    "[blank]user.email",
			Message: "You must specify the [user.email] property.",
		})
	default:
		if _, err := mail.ParseAddress(p.Email); err != nil {
			fields["user.email"] = append(fields["user.email"], FieldMessage{
				Code:    "[invalid]user.email",
				Message: "Invalid [user.email] property.",
			})
		}
	}

	switch {
	case p.Password == "":
		fields["user.password"] = append(fields["user.password"], FieldMessage{
			Code:    "[blank]user.password",
			Message: "You must specify the [user.password] property.",
		})
	case len(p.Password) < minLen:
		fields["user.password"] = append(fields["user.password"], FieldMessage{
			Code:    "[tooShort]user.password",
			Message: "The [user.password] property is too short.",
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return &PolicyError{Fields: fields}
}
