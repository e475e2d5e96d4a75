package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		rec := &recorder{}
		client := newTestClient(t, rec.wrap(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, RefreshResponseBody{
				Token:          "renewed-access-token",
				RefreshToken:   "rotated-refresh-token",
				RefreshTokenID: "4e0c1b9a-1111-2222-3333-444455556666",
			})
		}))

		res, err := client.RefreshToken(context.Background(), "old-refresh-token")
		require.NoError(t, err)

		require.Equal(t, "renewed-access-token", res.Token)
		require.Equal(t, "rotated-refresh-token", res.RefreshToken)
		require.Empty(t, res.UserID)
		require.True(t, res.ExpiresAt.IsZero())

		req := rec.one(t)
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/api/jwt/refresh", req.Path)
		requireProviderHeaders(t, req)

		var body RefreshRequestBody
		require.NoError(t, json.Unmarshal(req.Body, &body))
		require.Equal(t, "old-refresh-token", body.RefreshToken)
	})

	t.Run("token no longer refreshable", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusGone} {
			t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(status)
				})

				res, err := client.RefreshToken(context.Background(), "revoked-refresh-token")
				require.Nil(t, res)

				var nre *TokenNotRefreshableError
				require.ErrorAs(t, err, &nre)
				require.Equal(t, status, nre.Status)
			})
		}
	})

	t.Run("unexpected status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.RefreshToken(context.Background(), "old-refresh-token")

		var upe *UnexpectedProviderError
		require.ErrorAs(t, err, &upe)
		require.Equal(t, http.StatusInternalServerError, upe.Status)
	})
}
