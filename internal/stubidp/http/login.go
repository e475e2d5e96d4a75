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

// LoginHandler serves POST /api/login.
type LoginHandler struct {
	LoginService  *service.LoginService
	ApplicationID string
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticates a user by email and password against the configured application and returns a token pair.
//	@Description	Invalid credentials answer 404 with no body; whether the email exists or the password was wrong is never revealed. A locked account answers 409.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.LoginRequestBody		true	"Login request"
//	@Success		200		{object}	authclient.LoginResponseBody	"user, token, refreshToken, tokenExpirationInstant"
//	@Failure		400		{object}	authclient.ErrorBody			"fieldErrors, generalErrors"
//	@Failure		401		{string}	string							"missing or unknown API key"
//	@Failure		404		{string}	string							"invalid credentials (deliberately empty)"
//	@Failure		409		{string}	string							"account locked (deliberately empty)"
//	@Security		APIKeyAuth
//	@Security		TenantHeader
//	@Router			/api/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body authclient.LoginRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeGeneralError(w, http.StatusBadRequest,
			"[invalid]request.body", "The request body is not valid JSON.")
		return
	}

	// An unknown application gets the same opaque 404 as bad credentials:
	// probing which applications exist is no cheaper than probing accounts.
	if body.ApplicationID != h.ApplicationID {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	session, err := h.LoginService.Login(ctx, body.LoginID, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			// No body. The provider's contract keeps the failure opaque.
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, service.ErrUserLocked):
			w.WriteHeader(http.StatusConflict)
		default:
			log.Error("login failed", "err", err)
			writeGeneralError(w, http.StatusInternalServerError,
				"server_error", "Login could not be completed.")
		}
		return
	}

	response := authclient.LoginResponseBody{
		User:                   userToWire(session.User),
		Token:                  session.Tokens.AccessToken,
		RefreshToken:           session.Tokens.RefreshToken,
		TokenExpirationInstant: session.Tokens.AccessExpiresAt.UnixMilli(),
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
