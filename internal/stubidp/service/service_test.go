package service

import (
	"testing"
	"time"

	"github.com/lanternsec/fusionkit/internal/stubidp/store"
	"github.com/lanternsec/fusionkit/internal/stubidp/store/drivers/sqlite"
	"github.com/lanternsec/fusionkit/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testIssuer   = "fusionkit-stubidp"
	testAppID    = "3c219e58-ed0e-4b18-ad48-f4f92793ae32"
	testTenantID = "30663132-6464-6665-3032-326466613934"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTokenService(t *testing.T, st store.Store) *TokenService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), time.Second, testIssuer)
	require.NoError(t, err)

	return &TokenService{
		Store:         st,
		Signer:        signer,
		Verifier:      verifier,
		Issuer:        testIssuer,
		ApplicationID: testAppID,
		TenantID:      testTenantID,
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
}

func newRegistrationService(t *testing.T, st store.Store) *RegistrationService {
	t.Helper()

	return &RegistrationService{
		Store:        st,
		Tokens:       newTokenService(t, st),
		DefaultRoles: []string{"user"},
	}
}
