package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/lanternsec/fusionkit/pkg/authclient"
	"github.com/lanternsec/fusionkit/pkg/cryptox"
	"github.com/lanternsec/fusionkit/pkg/slogx"

	gocache "github.com/patrickmn/go-cache"
)

// defaultValidationTTL bounds how long a positive validation is reused before
// the provider is consulted again. Keep it short: revocation at the provider
// is invisible until the cache entry falls out.
const defaultValidationTTL = 30 * time.Second

// TokenValidator is the slice of the auth client this middleware needs.
// *authclient.Client satisfies it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*authclient.TokenValidation, error)
}

// AuthnOption tweaks RequireToken behaviour.
type AuthnOption func(*authnConfig)

type authnConfig struct {
	ttl time.Duration
}

// WithValidationTTL overrides how long positive validations are cached.
// Zero or negative disables caching entirely.
func WithValidationTTL(ttl time.Duration) AuthnOption {
	return func(c *authnConfig) { c.ttl = ttl }
}

// RequireToken authenticates requests by validating their bearer token
// against the identity provider.
//
// Positive results are cached in-process keyed by the token's fingerprint,
// never the token itself. An invalid or expired token gets an RFC 6750 401;
// a provider that cannot be reached gets a 502 with no detail, since the
// failure is ours, not the caller's.
func RequireToken(v TokenValidator, opts ...AuthnOption) Middleware {
	cfg := authnConfig{ttl: defaultValidationTTL}
	for _, opt := range opts {
		opt(&cfg)
	}

	var cache *gocache.Cache
	if cfg.ttl > 0 {
		cache = gocache.New(cfg.ttl, 2*cfg.ttl)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			fp := cryptox.FingerprintToken(raw)
			if cache != nil {
				if cached, found := cache.Get(fp); found {
					next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, cached.(Identity))))
					return
				}
			}

			res, err := v.ValidateToken(ctx, raw)
			if err != nil {
				log.Error("token validation unavailable", "err", err)
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			if !res.Valid {
				writeBearerError(w, "token is invalid or expired")
				return
			}

			id := identityFromClaims(res.Claims)
			if cache != nil {
				cache.SetDefault(fp, id)
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	if raw == "" {
		return "", false
	}
	return raw, true
}

// identityFromClaims lifts the subject and roles out of the provider's claim
// map. Claim values arrive as decoded JSON, so roles is []any of strings.
func identityFromClaims(claims map[string]any) Identity {
	id := Identity{Claims: claims}

	if sub, ok := claims["sub"].(string); ok {
		id.UserID = sub
	}

	if raw, ok := claims["roles"].([]any); ok {
		roles := make([]string, 0, len(raw))
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
		id.Roles = roles
	}

	return id
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
