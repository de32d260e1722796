package auth

import (
	"context"
	"strings"

	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	"github.com/dropDatabas3/cvision/internal/observability/metrics"
	tokens "github.com/dropDatabas3/cvision/internal/security/token"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// RefreshDeps contiene las dependencias para el refresh service.
type RefreshDeps struct {
	Users  core.UserRepository
	Issuer *jwtx.Issuer
}

type refreshService struct {
	deps RefreshDeps
}

// NewRefreshService crea un nuevo servicio de rotación de refresh tokens.
func NewRefreshService(deps RefreshDeps) RefreshService {
	return &refreshService{deps: deps}
}

// Refresh valida el refresh token, lo rota y emite un par nuevo.
//
// Un refresh bien firmado cuyo hash ya no figura en la lista del usuario
// es un token robado o ya rotado: se revocan TODAS las sesiones y el
// caller recibe ErrReuseDetected. El dueño legítimo pierde sus sesiones,
// pero el atacante también.
func (s *refreshService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.refresh"),
		logger.Op("Refresh"),
	)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrMissingFields
	}

	claims, err := s.deps.Issuer.Parse(refreshToken, jwtx.KindRefresh)
	if err != nil {
		log.Debug("refresh token rejected", logger.Err(err))
		return nil, ErrInvalidRefresh
	}

	user, err := s.deps.Users.GetByID(ctx, claims.Subject)
	if err != nil {
		log.Debug("user not found for refresh")
		return nil, ErrInvalidRefresh
	}

	log = log.With(logger.UserID(user.ID))

	hash := tokens.SHA256Base64URL(refreshToken)
	has, err := s.deps.Users.HasRefreshTokenHash(ctx, user.ID, hash)
	if err != nil {
		log.Error("hash membership check failed", logger.Err(err))
		return nil, err
	}

	if !has {
		// Replay: firma válida pero el hash ya fue rotado o nunca existió
		log.Warn("refresh token reuse detected, revoking all sessions")
		metrics.RecordRefreshReuse()
		if err := s.deps.Users.ClearRefreshTokenHashes(ctx, user.ID); err != nil {
			log.Error("failed to revoke sessions", logger.Err(err))
			return nil, err
		}
		return nil, ErrReuseDetected
	}

	// Rotación: primero sale el hash usado, después entra el nuevo
	if err := s.deps.Users.RemoveRefreshTokenHash(ctx, user.ID, hash); err != nil {
		log.Error("failed to remove rotated hash", logger.Err(err))
		return nil, err
	}

	res, err := issueSession(ctx, s.deps.Users, s.deps.Issuer, user)
	if err != nil {
		return nil, err
	}

	log.Info("refresh rotated")
	return res, nil
}
