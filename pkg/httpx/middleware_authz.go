package httpx

import (
	"net/http"
	"strings"
)

// RequireRole the caller must hold the given registration role.
func RequireRole(role string) Middleware {
	return RequireAnyRole(role)
}

// RequireAnyRole the caller must hold at least one of the listed roles.
func RequireAnyRole(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				// RequireToken did not run; treat as unauthenticated rather
				// than guessing at roles.
				writeBearerError(w, "missing bearer token")
				return
			}

			for _, role := range required {
				if id.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeRoleError(w, required...)
		})
	}
}

// RFC 6750-style error response for missing roles.
func writeRoleError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_roles", roles="`+strings.Join(required, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_roles"))
}
