package chi

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the shared secret on every protected request
const APIKeyHeader = "X-Webhook-Api-Key"

// exemptPaths are served without an API key
var exemptPaths = map[string]struct{}{
	"/docs":         {},
	"/redoc":        {},
	"/openapi.json": {},
	"/health":       {},
}

// requireAPIKey rejects every non-exempt request that does not carry apiKey.
// With no apiKey configured nothing but the exempt paths is reachable.
func requireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if apiKey == "" {
				writeDetail(w, http.StatusInternalServerError, "Server misconfiguration: WEBHOOK_API_KEY not set")
				return
			}
			values := r.Header.Values(APIKeyHeader)
			if len(values) == 0 {
				writeDetail(w, http.StatusUnauthorized, "Missing X-Webhook-Api-Key header")
				return
			}
			if subtle.ConstantTimeCompare([]byte(values[0]), []byte(apiKey)) != 1 {
				writeDetail(w, http.StatusForbidden, "Invalid webhook API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
