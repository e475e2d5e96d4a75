package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lanternsec/fusionkit/internal/stubidp/service"
	"github.com/lanternsec/fusionkit/pkg/authclient"
	"github.com/lanternsec/fusionkit/pkg/httpx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

// RefreshHandler serves POST /api/jwt/refresh.
type RefreshHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchanges a refresh token for a renewed token pair. The presented refresh token is revoked and replaced, so it cannot be exchanged twice.
//	@Description	An unknown or expired refresh token answers 404; a revoked one (rotation replay) answers 410.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.RefreshRequestBody	true	"Refresh request"
//	@Success		200		{object}	authclient.RefreshResponseBody	"token, refreshToken, refreshTokenId"
//	@Failure		400		{object}	authclient.ErrorBody			"fieldErrors, generalErrors"
//	@Failure		401		{string}	string							"missing or unknown API key"
//	@Failure		404		{string}	string							"unknown or expired refresh token (deliberately empty)"
//	@Failure		410		{string}	string							"revoked refresh token (deliberately empty)"
//	@Security		APIKeyAuth
//	@Security		TenantHeader
//	@Router			/api/jwt/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body authclient.RefreshRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeGeneralError(w, http.StatusBadRequest,
			"[invalid]request.body", "The request body is not valid JSON.")
		return
	}

	// An empty refresh token is just an unknown one.
	if body.RefreshToken == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	session, err := h.TokenService.Refresh(ctx, body.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound), errors.Is(err, service.ErrTokenExpired):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, service.ErrTokenRevoked):
			w.WriteHeader(http.StatusGone)
		default:
			log.Error("refresh failed", "err", err)
			writeGeneralError(w, http.StatusInternalServerError,
				"server_error", "Refresh could not be completed.")
		}
		return
	}

	response := authclient.RefreshResponseBody{
		Token:          session.Tokens.AccessToken,
		RefreshToken:   session.Tokens.RefreshToken,
		RefreshTokenID: session.Tokens.RefreshTokenID,
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
