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

// RegisterController maneja el alta de cuentas.
type RegisterController struct {
	service svc.RegisterService
	cookie  CookieConfig
}

// NewRegisterController crea un nuevo controller de registro.
func NewRegisterController(service svc.RegisterService, cookie CookieConfig) *RegisterController {
	return &RegisterController{service: service, cookie: cookie}
}

// Register maneja POST /v1/auth/register
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	res, err := c.service.Register(ctx, req)
	if err != nil {
		log.Debug("register failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields)
		case errors.Is(err, svc.ErrInvalidOTP):
			httperrors.WriteError(w, httperrors.ErrInvalidOTP)
		case errors.Is(err, svc.ErrEmailInUse):
			httperrors.WriteError(w, httperrors.ErrEmailAlreadyInUse)
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	// Registro exitoso = sesión abierta, igual que el login
	writeSession(w, res, c.cookie, http.StatusCreated)
}
