package auth

import (
	"context"
	"strings"

	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/observability/metrics"
	"github.com/dropDatabas3/cvision/internal/security/otp"
)

// OTPDeps contiene las dependencias para el OTP service.
type OTPDeps struct {
	Store *otp.Store
	Send  OTPSender
}

type otpService struct {
	deps OTPDeps
}

// NewOTPService crea un nuevo servicio de envío de OTP.
func NewOTPService(deps OTPDeps) OTPService {
	return &otpService{deps: deps}
}

// Send emite un código y lo manda por email. No chequea si el email ya
// tiene cuenta: esa validación ocurre recién en el registro, así el
// endpoint no revela qué direcciones están registradas.
func (s *otpService) Send(ctx context.Context, name, email string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.otp"),
		logger.Op("Send"),
	)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrMissingFields
	}

	// Un pedido nuevo pisa el código pendiente
	code, err := s.deps.Store.Issue(ctx, email)
	if err != nil {
		log.Error("failed to issue otp", logger.Err(err))
		return ErrOTPDeliveryFailed
	}

	if err := s.deps.Send(email, name, code, s.deps.Store.TTL); err != nil {
		log.Error("failed to send otp email", logger.Err(err))
		metrics.RecordOTPSent("failed")
		return ErrOTPDeliveryFailed
	}

	log.Info("otp sent", logger.Email(email))
	metrics.RecordOTPSent("ok")
	return nil
}
