package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/lanternsec/fusionkit/pkg/idx"
	"github.com/lanternsec/fusionkit/pkg/slogx"

	"gopkg.in/yaml.v3"
)

// LoadKickstart reads and parses a kickstart document. It is called before
// the rest of boot because the document may pin the API key and tenant and
// application ids the configuration otherwise generates.
func LoadKickstart(path string) (*domain.Kickstart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kickstart: %w", err)
	}

	var ks domain.Kickstart
	if err := yaml.Unmarshal(raw, &ks); err != nil {
		return nil, fmt.Errorf("parse kickstart: %w", err)
	}

	for i, u := range ks.Users {
		if u.Email == "" {
			return nil, fmt.Errorf("kickstart: users[%d] has no email", i)
		}
		if u.Password == "" {
			return nil, fmt.Errorf("kickstart: users[%d] has no password", i)
		}
	}

	return &ks, nil
}

// SeedService creates the kickstart users at boot.
type SeedService struct {
	Store store.Store
}

// Apply creates every kickstart user that does not already exist. Existing
// emails are skipped, so restarting against a persistent database is
// idempotent.
func (s *SeedService) Apply(ctx context.Context, ks *domain.Kickstart) error {
	l := slogx.FromContext(ctx)

	var created, skipped int
	for _, ku := range ks.Users {
		_, err := s.Store.Users().GetUserByEmail(ctx, ku.Email)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		hash, err := cryptox.HashPassword(ku.Password)
		if err != nil {
			return err
		}

		u := domain.User{
			ID:           idx.New().String(),
			Email:        ku.Email,
			FirstName:    ku.FirstName,
			LastName:     ku.LastName,
			Username:     ku.Username,
			PasswordHash: hash,
			Roles:        ku.Roles,
			Active:       true,
		}
		if err := s.Store.Users().CreateUser(ctx, u); err != nil {
			// Lost a race with a concurrent boot; the user exists now.
			if errors.Is(err, store.ErrAlreadyExists) {
				skipped++
				continue
			}
			return err
		}
		created++
	}

	l.Info("kickstart applied", "created", created, "skipped", skipped)
	return nil
}
