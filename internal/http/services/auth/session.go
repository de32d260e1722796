package auth

import (
	"context"

	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
	tokens "github.com/dropDatabas3/cvision/internal/security/token"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// issueSession emite un par access/refresh y persiste el hash del refresh.
// El append recorta por el frente: el usuario nunca acumula más de
// core.MaxRefreshTokenHashes sesiones activas.
func issueSession(ctx context.Context, users core.UserRepository, issuer *jwtx.Issuer, user *core.User) (*TokenResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth.session"))

	access, _, err := issuer.Sign(user.ID, user.Email, jwtx.KindAccess)
	if err != nil {
		log.Error("failed to sign access token", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	refresh, _, err := issuer.Sign(user.ID, user.Email, jwtx.KindRefresh)
	if err != nil {
		log.Error("failed to sign refresh token", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	// Nunca guardamos el refresh crudo, solo su digest
	hash := tokens.SHA256Base64URL(refresh)
	if err := users.AppendRefreshTokenHash(ctx, user.ID, hash); err != nil {
		log.Error("failed to persist refresh token hash", logger.Err(err))
		return nil, ErrTokenIssueFailed
	}

	return &TokenResult{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(issuer.AccessTTL.Seconds()),
	}, nil
}
