package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/cvision/internal/http/errors"
	svc "github.com/dropDatabas3/cvision/internal/http/services/auth"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

// LoginController maneja el endpoint de login.
type LoginController struct {
	service svc.LoginService
	cookie  CookieConfig
}

// NewLoginController crea un nuevo controller de login.
func NewLoginController(service svc.LoginService, cookie CookieConfig) *LoginController {
	return &LoginController{service: service, cookie: cookie}
}

// Login maneja POST /v1/auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		writeLoginError(w, err)
		return
	}

	writeSession(w, result, c.cookie, http.StatusOK)
}

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("email y password son obligatorios"))

	case errors.Is(err, svc.ErrSocialOnlyAccount):
		httperrors.WriteError(w, httperrors.ErrSocialOnlyLogin)

	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)

	case errors.Is(err, svc.ErrTokenIssueFailed):
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithDetail("error al emitir tokens"))

	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
