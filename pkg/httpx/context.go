package httpx

import "context"

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// Identity is what token validation established about the caller.
type Identity struct {
	// UserID is the token subject.
	UserID string

	// Roles are the caller's registration roles, if the token carries any.
	Roles []string

	// Claims is the full provider-reported claim set.
	Claims map[string]any
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ContextWithIdentity attaches a validated identity for downstream handlers.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the identity RequireToken injected, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}
