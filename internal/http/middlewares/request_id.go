package middlewares

import (
	"net/http"
	"strings"

	tokens "github.com/dropDatabas3/cvision/internal/security/token"
)

// maxRequestIDLen limita los X-Request-ID que manda el cliente; un valor
// más largo se descarta y se genera uno propio.
const maxRequestIDLen = 64

// WithRequestID propaga el X-Request-ID del cliente o genera uno opaco
// nuevo. El ID va al header de respuesta y al contexto, de donde lo
// levanta el logging.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
			if rid == "" || len(rid) > maxRequestIDLen {
				if generated, err := tokens.GenerateOpaqueToken(16); err == nil {
					rid = generated
				} else {
					rid = "unavailable"
				}
			}

			w.Header().Set("X-Request-ID", rid)

			ctx := setRequestID(r.Context(), rid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
