package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		rec := &recorder{}
		client := newTestClient(t, rec.wrap(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, RegistrationResponseBody{
				User: UserPayload{
					ID:     "0198a3c2-70c1-7d6e-a3a1-2f1b9d6c0001",
					Email:  "sam@example.com",
					Active: true,
				},
				Registration:           RegistrationPayload{ApplicationID: testAppID},
				Token:                  "access-token",
				RefreshToken:           "refresh-token",
				TokenExpirationInstant: 1757421000000,
			})
		}))

		res, err := client.RegisterUser(context.Background(), RegistrationRequest{
			Email:     "sam@example.com",
			FirstName: "Sam",
			LastName:  "Rivers",
			Password:  "correct horse battery staple",
			Username:  "sam",
		})
		require.NoError(t, err)

		require.Equal(t, "0198a3c2-70c1-7d6e-a3a1-2f1b9d6c0001", res.UserID)
		require.Equal(t, "access-token", res.Token)
		require.Equal(t, "refresh-token", res.RefreshToken)
		require.Equal(t, time.UnixMilli(1757421000000).UTC(), res.ExpiresAt)

		req := rec.one(t)
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/api/user/registration", req.Path)
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))
		requireProviderHeaders(t, req)

		// The application id must come from the client's config, not from
		// anything the caller typed.
		var body RegistrationRequestBody
		require.NoError(t, json.Unmarshal(req.Body, &body))
		require.Equal(t, testAppID, body.Registration.ApplicationID)
		require.Equal(t, "sam", body.Registration.Username)
		require.Equal(t, "sam@example.com", body.User.Email)
		require.Equal(t, "correct horse battery staple", body.User.Password)
	})

	t.Run("accepts 201", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, RegistrationResponseBody{
				User: UserPayload{ID: "user-2"},
			})
		})

		res, err := client.RegisterUser(context.Background(), RegistrationRequest{
			Email:    "lee@example.com",
			Password: "a long enough password",
		})
		require.NoError(t, err)
		require.Equal(t, "user-2", res.UserID)
		require.True(t, res.ExpiresAt.IsZero())
	})

	t.Run("tenant scoped username is passed through", func(t *testing.T) {
		rec := &recorder{}
		client := newTestClient(t, rec.wrap(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, RegistrationResponseBody{User: UserPayload{ID: "user-3"}})
		}))

		_, err := client.RegisterUser(context.Background(), RegistrationRequest{
			Email:                "kim@example.com",
			Password:             "a long enough password",
			Username:             "kim",
			TenantScopedUsername: true,
		})
		require.NoError(t, err)

		var body RegistrationRequestBody
		require.NoError(t, json.Unmarshal(rec.one(t).Body, &body))
		require.True(t, body.Registration.TenantScopedUsername)
	})

	t.Run("duplicate email", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, ErrorBody{
				FieldErrors: map[string][]FieldMessage{
					"user.email": {{
						Code:    "[duplicate]user.email",
						Message: "A User with email = [sam@example.com] already exists.",
					}},
				},
			})
		})

		res, err := client.RegisterUser(context.Background(), RegistrationRequest{
			Email:    "sam@example.com",
			Password: "a long enough password",
		})
		require.Nil(t, res)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, http.StatusBadRequest, ve.Status)
		require.Equal(t,
			[]string{"A User with email = [sam@example.com] already exists."},
			ve.Messages("user.email"))
		require.Contains(t, ve.Error(), "user.email")
	})

	t.Run("password policy rejection", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, ErrorBody{
				FieldErrors: map[string][]FieldMessage{
					"user.password": {{
						Code:    "[tooShort]user.password",
						Message: "Password must be at least 8 characters.",
					}},
				},
			})
		})

		_, err := client.RegisterUser(context.Background(), RegistrationRequest{
			Email:    "sam@example.com",
			Password: "short",
		})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, []string{"Password must be at least 8 characters."}, ve.Messages("user.password"))
		require.Nil(t, ve.Messages("user.email"))
	})

	t.Run("undecodable success body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.RegisterUser(context.Background(), RegistrationRequest{
			Email:    "sam@example.com",
			Password: "a long enough password",
		})

		var upe *UnexpectedProviderError
		require.ErrorAs(t, err, &upe)
		require.Equal(t, http.StatusOK, upe.Status)
	})
}
