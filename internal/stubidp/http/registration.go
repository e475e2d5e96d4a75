package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lanternsec/fusionkit/internal/stubidp/domain"
	"github.com/lanternsec/fusionkit/internal/stubidp/service"
	"github.com/lanternsec/fusionkit/pkg/authclient"
	"github.com/lanternsec/fusionkit/pkg/httpx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

// RegistrationHandler serves POST /api/user/registration.
type RegistrationHandler struct {
	RegistrationService *service.RegistrationService
	ApplicationID       string
}

// ServeHTTP godoc
//
//	@Summary		User Registration Endpoint
//	@Description	Creates a user and their registration in the configured application, returning the new user together with an initial token pair.
//	@Description	Policy violations (blank or malformed email, password too short) and duplicate emails are rejected with field-level error messages.
//	@Tags			Identity
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.RegistrationRequestBody		true	"Registration request"
//	@Success		200		{object}	authclient.RegistrationResponseBody	"user, registration, token, refreshToken, tokenExpirationInstant"
//	@Failure		400		{object}	authclient.ErrorBody					"fieldErrors, generalErrors"
//	@Failure		401		{string}	string									"missing or unknown API key"
//	@Security		APIKeyAuth
//	@Security		TenantHeader
//	@Router			/api/user/registration [post].
func (h *RegistrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body authclient.RegistrationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeGeneralError(w, http.StatusBadRequest,
			"[invalid]request.body", "The request body is not valid JSON.")
		return
	}

	if body.Registration.ApplicationID != h.ApplicationID {
		writeErrorBody(w, http.StatusBadRequest, authclient.ErrorBody{
			FieldErrors: map[string][]authclient.FieldMessage{
				"registration.applicationId": {{
					Code:    "[invalid]registration.applicationId",
					Message: "The [registration.applicationId] property is not a registered application.",
				}},
			},
		})
		return
	}

	session, err := h.RegistrationService.Register(ctx, service.RegistrationParams{
		Email:     body.User.Email,
		FirstName: body.User.FirstName,
		LastName:  body.User.LastName,
		Username:  body.Registration.Username,
		Password:  body.User.Password,
		Roles:     body.Registration.Roles,
	})
	if err != nil {
		var policyErr *service.PolicyError
		switch {
		case errors.As(err, &policyErr):
			writeErrorBody(w, http.StatusBadRequest, authclient.ErrorBody{
				FieldErrors: fieldErrorsToWire(policyErr.Fields),
			})
		case errors.Is(err, service.ErrDuplicateEmail):
			writeErrorBody(w, http.StatusBadRequest, authclient.ErrorBody{
				FieldErrors: map[string][]authclient.FieldMessage{
					"user.email": {{
						Code:    "[duplicate]user.email",
						Message: fmt.Sprintf("A user with email [%s] already exists.", body.User.Email),
					}},
				},
			})
		default:
			log.Error("registration failed", "err", err)
			writeGeneralError(w, http.StatusInternalServerError,
				"server_error", "Registration could not be completed.")
		}
		return
	}

	response := authclient.RegistrationResponseBody{
		User: userToWire(session.User),
		Registration: authclient.RegistrationPayload{
			ApplicationID: h.ApplicationID,
			Username:      session.User.Username,
			Roles:         session.User.Roles,
		},
		Token:                  session.Tokens.AccessToken,
		RefreshToken:           session.Tokens.RefreshToken,
		TokenExpirationInstant: session.Tokens.AccessExpiresAt.UnixMilli(),
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// fieldErrorsToWire converts the service's policy messages into the wire
// error shape.
func fieldErrorsToWire(fields map[string][]service.FieldMessage) map[string][]authclient.FieldMessage {
	out := make(map[string][]authclient.FieldMessage, len(fields))
	for field, msgs := range fields {
		wire := make([]authclient.FieldMessage, 0, len(msgs))
		for _, m := range msgs {
			wire = append(wire, authclient.FieldMessage{Code: m.Code, Message: m.Message})
		}
		out[field] = wire
	}
	return out
}

// userToWire reduces a domain user to the provider's user object.
func userToWire(u domain.User) authclient.UserPayload {
	return authclient.UserPayload{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Active:    u.Active,
	}
}
