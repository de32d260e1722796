package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/cvision/internal/http/errors"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
)

// RequireAuth valida Authorization: Bearer <JWT> y guarda las claims en el contexto.
// Un token bien firmado pero presente en la blacklist (logout) también se
// rechaza con 401. Si el token es inválido o no está presente, responde 401.
func RequireAuth(issuer *jwtx.Issuer, bl *blacklist.Blacklist) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			claims, err := issuer.Parse(raw, jwtx.KindAccess)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			// Revocación: un access token en la blacklist ya hizo logout
			if bl != nil && bl.IsRevoked(r.Context(), raw) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="token revoked"`)
				errors.WriteError(w, errors.ErrTokenRevoked)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = WithUserID(ctx, claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser verifica que haya un usuario autenticado en el contexto.
// Debe usarse después de RequireAuth.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUserID(r.Context()) == "" {
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
