package auth

import (
	"context"
	"strings"

	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
	tokens "github.com/dropDatabas3/cvision/internal/security/token"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// LogoutDeps contiene las dependencias para el logout service.
type LogoutDeps struct {
	Users     core.UserRepository
	Issuer    *jwtx.Issuer
	Blacklist *blacklist.Blacklist
}

type logoutService struct {
	deps LogoutDeps
}

// NewLogoutService crea un nuevo servicio de logout.
func NewLogoutService(deps LogoutDeps) LogoutService {
	return &logoutService{deps: deps}
}

// Logout revoca el access token vía blacklist y elimina el hash del
// refresh de la lista del usuario. El logout es best-effort: un refresh
// inválido o ya rotado no hace fallar la operación, el access igual
// queda revocado.
func (s *logoutService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.logout"),
		logger.Op("Logout"),
	)

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return ErrMissingFields
	}

	// Blacklist hasta que expire solo; errores de cache se tragan adentro
	s.deps.Blacklist.Add(ctx, accessToken)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		log.Info("logout without refresh token")
		return nil
	}

	claims, err := s.deps.Issuer.Parse(refreshToken, jwtx.KindRefresh)
	if err != nil {
		log.Debug("refresh token invalid on logout", logger.Err(err))
		return nil
	}

	hash := tokens.SHA256Base64URL(refreshToken)
	if err := s.deps.Users.RemoveRefreshTokenHash(ctx, claims.Subject, hash); err != nil {
		log.Warn("failed to remove refresh hash on logout", logger.Err(err))
		return nil
	}

	log.Info("logout completed", logger.UserID(claims.Subject))
	return nil
}
