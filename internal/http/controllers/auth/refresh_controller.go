package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/cvision/internal/http/errors"
	"github.com/dropDatabas3/cvision/internal/http/helpers"
	svc "github.com/dropDatabas3/cvision/internal/http/services/auth"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

// RefreshController maneja la rotación de refresh tokens.
type RefreshController struct {
	service svc.RefreshService
	cookie  CookieConfig
}

// NewRefreshController crea un nuevo controller de refresh.
func NewRefreshController(service svc.RefreshService, cookie CookieConfig) *RefreshController {
	return &RefreshController{service: service, cookie: cookie}
}

// Refresh maneja POST /v1/auth/refresh-token
func (c *RefreshController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RefreshController.Refresh"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	refreshToken := extractRefreshToken(r, c.cookie.Name)
	if refreshToken == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("refresh_token es obligatorio"))
		return
	}

	result, err := c.service.Refresh(ctx, refreshToken)
	if err != nil {
		log.Debug("refresh failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("refresh_token es obligatorio"))
		case errors.Is(err, svc.ErrInvalidRefresh):
			httperrors.WriteError(w, httperrors.ErrRefreshInvalid)
		case errors.Is(err, svc.ErrReuseDetected):
			// La sesión del cliente murió junto con todas las demás
			http.SetCookie(w, helpers.BuildDeletionCookie(c.cookie.Name, c.cookie.Domain, c.cookie.SameSite, c.cookie.Secure))
			httperrors.WriteError(w, httperrors.ErrSessionsRevoked)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeSession(w, result, c.cookie, http.StatusOK)
}

// extractRefreshToken busca el token en el body JSON y cae a la cookie.
// El body gana si ambos están presentes.
func extractRefreshToken(r *http.Request, cookieName string) string {
	r.Body = http.MaxBytesReader(nil, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil || err == io.EOF {
		if tok := strings.TrimSpace(req.RefreshToken); tok != "" {
			return tok
		}
	}

	if ck, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(ck.Value)
	}
	return ""
}
