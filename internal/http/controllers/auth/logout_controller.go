package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/cvision/internal/http/errors"
	"github.com/dropDatabas3/cvision/internal/http/helpers"
	svc "github.com/dropDatabas3/cvision/internal/http/services/auth"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

// LogoutController maneja el cierre de sesión.
type LogoutController struct {
	service svc.LogoutService
	cookie  CookieConfig
}

// NewLogoutController crea un nuevo controller de logout.
func NewLogoutController(service svc.LogoutService, cookie CookieConfig) *LogoutController {
	return &LogoutController{service: service, cookie: cookie}
}

// Logout maneja POST /v1/auth/logout.
// Requiere access token válido (pasa por RequireAuth); el refresh puede
// venir por body o cookie y es opcional.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LogoutController.Logout"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	accessToken := ""
	if strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		accessToken = strings.TrimSpace(ah[len("Bearer "):])
	}

	refreshToken := extractRefreshToken(r, c.cookie.Name)

	if err := c.service.Logout(ctx, accessToken, refreshToken); err != nil {
		log.Debug("logout failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("token requerido"))
		return
	}

	// La cookie del refresh muere acá
	http.SetCookie(w, helpers.BuildDeletionCookie(c.cookie.Name, c.cookie.Domain, c.cookie.SameSite, c.cookie.Secure))

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
