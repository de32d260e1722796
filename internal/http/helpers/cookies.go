package helpers

import (
	"net/http"
	"strings"
	"time"
)

// DefaultRefreshCookieName es el nombre de la cookie de sesión cuando la
// configuración no define uno.
const DefaultRefreshCookieName = "refresh_token"

// ParseSameSite traduce el valor de configuración a http.SameSite.
// Valores desconocidos caen a Lax.
func ParseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// BuildCookie arma la cookie httpOnly del refresh token. Con ttl cero la
// cookie queda de sesión (sin Expires ni MaxAge).
func BuildCookie(name, value, domain, sameSite string, secure bool, ttl time.Duration) *http.Cookie {
	if strings.TrimSpace(name) == "" {
		name = DefaultRefreshCookieName
	}
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: ParseSameSite(sameSite),
	}
	if strings.TrimSpace(domain) != "" {
		ck.Domain = domain
	}
	if ttl > 0 {
		ck.Expires = time.Now().Add(ttl).UTC()
		ck.MaxAge = int(ttl.Seconds())
	}
	return ck
}

// BuildDeletionCookie arma la cookie que borra la sesión en el cliente:
// mismo nombre y scope, valor vacío y MaxAge negativo.
func BuildDeletionCookie(name, domain, sameSite string, secure bool) *http.Cookie {
	if strings.TrimSpace(name) == "" {
		name = DefaultRefreshCookieName
	}
	ck := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: ParseSameSite(sameSite),
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if strings.TrimSpace(domain) != "" {
		ck.Domain = domain
	}
	return ck
}
