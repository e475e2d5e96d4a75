package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/lanternsec/fusionkit/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestSigner(t *testing.T) *jwtx.HS256Signer {
	t.Helper()
	s, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	return s
}

func newTestVerifier(t *testing.T, leeway time.Duration, issuer string) *jwtx.HS256Verifier {
	t.Helper()
	v, err := jwtx.NewVerifierHS256(testSecret, leeway, issuer)
	require.NoError(t, err)
	return v
}

func TestHS256_RejectsShortSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrShortSecret)

	_, err = jwtx.NewVerifierHS256([]byte("short"), 0, "")
	require.ErrorIs(t, err, jwtx.ErrShortSecret)
}

func TestHS256_SignVerifyRoundTrip(t *testing.T) {
	signer := newTestSigner(t)
	verifier := newTestVerifier(t, 0, "stubidp")

	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:            "user-1",
		Issuer:             "stubidp",
		ApplicationID:      "app-1",
		TenantID:           "tenant-1",
		Email:              "dave@example.com",
		Roles:              []string{"admin"},
		AuthenticationType: jwtx.AuthTypePassword,
		TTL:                time.Hour,
	})

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")), "compact JWT has three segments")

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "app-1", got.ApplicationID)
	require.Equal(t, []string{"admin"}, got.Roles)
}

func TestHS256_Expired(t *testing.T) {
	signer := newTestSigner(t)
	verifier := newTestVerifier(t, 0, "")

	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject: "user-1",
		TTL:     time.Minute,
		Now:     time.Now().UTC().Add(-time.Hour),
	})

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256_LeewayAbsorbsSkew(t *testing.T) {
	signer := newTestSigner(t)
	verifier := newTestVerifier(t, time.Minute, "")

	// Expired ten seconds ago, within the one-minute leeway
	claims := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject: "user-1",
		TTL:     time.Minute,
		Now:     time.Now().UTC().Add(-70 * time.Second),
	})

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.NoError(t, err)
}

func TestHS256_WrongSecret(t *testing.T) {
	signer := newTestSigner(t)

	otherSecret := []byte("ffffffffffffffffffffffffffffffff")
	verifier, err := jwtx.NewVerifierHS256(otherSecret, 0, "")
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject: "user-1",
		TTL:     time.Hour,
	}))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256_IssuerMismatch(t *testing.T) {
	signer := newTestSigner(t)
	verifier := newTestVerifier(t, 0, "stubidp")

	token, err := signer.Sign(jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject: "user-1",
		Issuer:  "impostor",
		TTL:     time.Hour,
	}))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHS256_Garbage(t *testing.T) {
	verifier := newTestVerifier(t, 0, "")

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "token %q", tok)
	}
}

func TestHS256_RejectsUnsignedAlg(t *testing.T) {
	verifier := newTestVerifier(t, 0, "")

	// alg=none token: {"alg":"none","typ":"JWT"} . {"sub":"user-1"} .
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ1c2VyLTEifQ."
	_, err := verifier.Verify(unsigned)
	require.Error(t, err)
}
