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

// OTPController maneja el envío de códigos de verificación.
type OTPController struct {
	service svc.OTPService
}

// NewOTPController crea un nuevo controller de OTP.
func NewOTPController(service svc.OTPService) *OTPController {
	return &OTPController{service: service}
}

// SendOTP maneja POST /v1/auth/send-otp
func (c *OTPController) SendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("OTPController.SendOTP"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if err := c.service.Send(ctx, req.Name, req.Email); err != nil {
		log.Debug("send otp failed", logger.Err(err))
		switch {
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("email inválido"))
		case errors.Is(err, svc.ErrOTPDeliveryFailed):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("no se pudo enviar el código"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.SendOTPResponse{Email: req.Email})
}
