package http

import (
	"net/http"
	"strings"

	"github.com/lanternsec/fusionkit/internal/stubidp/service"
	"github.com/lanternsec/fusionkit/pkg/authclient"
	"github.com/lanternsec/fusionkit/pkg/httpx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

// ValidateHandler serves GET /api/jwt/validate.
//
// The route is registered for GET only; the mux answers any other method
// with 405 before this handler runs. Clients rely on that distinction to
// tell a miswired integration apart from an invalid token.
type ValidateHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Token Validation Endpoint
//	@Description	Validates the access token carried in the Authorization header and returns its claims.
//	@Description	An expired or unverifiable token answers 401 with no body; that is an expected outcome, not a fault. Only GET is accepted; any other method answers 405.
//	@Tags			Identity
//	@Produce		json
//	@Success		200	{object}	authclient.ValidateResponseBody	"jwt claims"
//	@Failure		401	{string}	string							"invalid or expired token (deliberately empty)"
//	@Failure		405	{string}	string							"method not allowed"
//	@Security		APIKeyAuth
//	@Security		TenantHeader
//	@Security		BearerAuth
//	@Router			/api/jwt/validate [get].
func (h *ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, ok := bearerToken(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	claims, err := h.TokenService.Validate(ctx, token)
	if err != nil {
		// Expired and unverifiable tokens share one opaque answer.
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	payload, err := claims.ToMap()
	if err != nil {
		log.Error("claims rendering failed", "err", err)
		writeGeneralError(w, http.StatusInternalServerError,
			"server_error", "Validation could not be completed.")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authclient.ValidateResponseBody{JWT: payload})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(authz, "Bearer ")
	if !found || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return strings.TrimSpace(raw), true
}
