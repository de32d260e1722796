package auth

import (
	"encoding/json"
	"net/http"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	"github.com/dropDatabas3/cvision/internal/http/helpers"
	svc "github.com/dropDatabas3/cvision/internal/http/services/auth"
)

// writeSession emite la respuesta de sesión: cookie httpOnly con el
// refresh y el par de tokens en el body. Compartido por register, login
// y refresh.
func writeSession(w http.ResponseWriter, res *svc.TokenResult, cookie CookieConfig, status int) {
	http.SetCookie(w, helpers.BuildCookie(
		cookie.Name, res.RefreshToken, cookie.Domain,
		cookie.SameSite, cookie.Secure, cookie.TTL,
	))

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.TokenResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    res.ExpiresIn,
		User: dto.SessionUser{
			ID:    res.UserID,
			Name:  res.Name,
			Email: res.Email,
		},
	})
}
