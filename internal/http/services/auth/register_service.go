package auth

import (
	"context"
	"errors"
	"strings"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/security/otp"
	"github.com/dropDatabas3/cvision/internal/security/password"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// RegisterDeps contiene las dependencias para el register service.
type RegisterDeps struct {
	Users  core.UserRepository
	Store  *otp.Store
	Issuer *jwtx.Issuer
	// Params de hashing; nil usa password.Default.
	Params *password.Params
}

type registerService struct {
	deps RegisterDeps
}

// NewRegisterService crea un nuevo servicio de registro.
func NewRegisterService(deps RegisterDeps) RegisterService {
	if deps.Params == nil {
		deps.Params = &password.Default
	}
	return &registerService{deps: deps}
}

func (s *registerService) Register(ctx context.Context, in dto.RegisterRequest) (*TokenResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Op("Register"),
	)

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.OTP = strings.TrimSpace(in.OTP)

	if in.Name == "" || in.Email == "" || in.Password == "" || in.OTP == "" {
		return nil, ErrMissingFields
	}

	// El código se consume acá: un segundo intento con el mismo OTP falla
	ok, err := s.deps.Store.Verify(ctx, in.Email, in.OTP)
	if err != nil {
		log.Error("otp verification failed", logger.Err(err))
		return nil, err
	}
	if !ok {
		log.Debug("otp rejected")
		return nil, ErrInvalidOTP
	}

	hash, err := password.Hash(*s.deps.Params, in.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, err
	}

	user, err := s.deps.Users.Create(ctx, core.CreateUserInput{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: &hash,
	})
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			log.Debug("email already registered")
			return nil, ErrEmailInUse
		}
		log.Error("user create failed", logger.Err(err))
		return nil, err
	}

	log.Info("user registered", logger.UserID(user.ID))

	// El registro abre sesión: mismo par de tokens que el login
	return issueSession(ctx, s.deps.Users, s.deps.Issuer, user)
}
