package http

import (
	"net/http"

	"github.com/lanternsec/fusionkit/pkg/authclient"
	"github.com/lanternsec/fusionkit/pkg/httpx"
	"github.com/lanternsec/fusionkit/pkg/slogx"
)

// Header names every /api request must carry. They match the wire contract
// the client stamps on its side.
const (
	headerTenant = "X-FusionAuth-TenantId"
	headerAPIKey = "X-Api-Key"
)

// requireProviderHeaders authenticates the calling application and pins the
// tenant. An unknown API key is a bare 401; a missing or foreign tenant is a
// 400 with a general error naming the header, since the caller authenticated
// but asked for a partition this instance does not serve.
func (r *Router) requireProviderHeaders() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log := slogx.FromContext(req.Context())

			key := req.Header.Get(headerAPIKey)
			if key == "" || key != r.apiKey {
				log.Warn("request rejected: bad api key", slogx.Secret("api_key", key))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			tenant := req.Header.Get(headerTenant)
			if tenant != r.tenantID {
				log.Warn("request rejected: tenant mismatch", "tenant_id", tenant)
				writeGeneralError(w, http.StatusBadRequest,
					"[invalid]tenantId",
					"The tenant specified in the X-FusionAuth-TenantId header is not valid for this instance.",
				)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}

// writeErrorBody writes the provider's field-rejection shape. The stub
// answers with the same types the client decodes, so the two sides cannot
// drift apart.
func writeErrorBody(w http.ResponseWriter, status int, body authclient.ErrorBody) {
	httpx.WriteJSON(w, status, body)
}

// writeGeneralError writes an error body carrying a single general message.
func writeGeneralError(w http.ResponseWriter, status int, code, message string) {
	writeErrorBody(w, status, authclient.ErrorBody{
		GeneralErrors: []authclient.FieldMessage{{Code: code, Message: message}},
	})
}
