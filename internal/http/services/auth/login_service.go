package auth

import (
	"context"
	"strings"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/observability/metrics"
	"github.com/dropDatabas3/cvision/internal/security/password"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// LoginDeps contiene las dependencias para el login service.
type LoginDeps struct {
	Users  core.UserRepository
	Issuer *jwtx.Issuer
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*TokenResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
		logger.Op("Login"),
	)

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.deps.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Debug("user not found")
		metrics.RecordLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	log = log.With(logger.UserID(user.ID))

	// Cuenta social-only: existe pero no tiene password
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		log.Debug("social-only account, password login rejected")
		metrics.RecordLogin("social_only")
		return nil, ErrSocialOnlyAccount
	}

	if !password.Verify(in.Password, *user.PasswordHash) {
		log.Debug("password check failed")
		metrics.RecordLogin("invalid")
		return nil, ErrInvalidCredentials
	}

	res, err := issueSession(ctx, s.deps.Users, s.deps.Issuer, user)
	if err != nil {
		return nil, err
	}

	log.Info("login successful")
	metrics.RecordLogin("ok")
	return res, nil
}
