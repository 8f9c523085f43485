package middleware

import (
	"net/http"

	"pet-vaccination-api/internal/platform/response"
)

// Preflight corta los OPTIONS antes del routing: responde solo con los
// headers fijos de CORS, sin body.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			response.Preflight(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}
