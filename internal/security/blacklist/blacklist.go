// Package blacklist mantiene el registro expirable de access tokens
// revocados antes de su expiración natural (logout).
package blacklist

import (
	"context"
	"time"

	"github.com/dropDatabas3/cvision/internal/cache"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

// FallbackTTL se usa cuando el token no trae claim exp decodificable.
const FallbackTTL = 15 * time.Minute

// Blacklist registra tokens revocados en el cache con TTL igual a la vida
// restante del token. Las fallas de cache nunca se propagan: un logout debe
// poder completarse aunque el cache esté caído.
type Blacklist struct {
	Cache cache.Client
}

func New(c cache.Client) *Blacklist {
	return &Blacklist{Cache: c}
}

func key(token string) string { return "blacklist:" + token }

// Add revoca un access token. El exp se decodifica SIN verificar firma:
// solo importa para acotar el TTL, no autoriza nada. Un token ya expirado
// no se escribe; jamás volverá a pasar verificación.
func (b *Blacklist) Add(ctx context.Context, token string) {
	ttl := FallbackTTL
	if exp, ok := jwtx.DecodeExpiryUnverified(token); ok {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return
		}
	}

	if err := b.Cache.Set(ctx, key(token), "true", ttl); err != nil {
		// Swallow: disponibilidad del logout por encima de la revocación
		// estricta cuando el cache no responde.
		logger.From(ctx).Warn("blacklist write failed",
			logger.Component("blacklist"),
			logger.Err(err),
		)
	}
}

// IsRevoked consulta el blacklist. Si el cache no responde, fail open:
// no negamos tráfico legítimo por una caída de infraestructura.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) bool {
	_, err := b.Cache.Get(ctx, key(token))
	if err == nil {
		return true
	}
	if !cache.IsNotFound(err) {
		logger.From(ctx).Warn("blacklist read failed, failing open",
			logger.Component("blacklist"),
			logger.Err(err),
		)
	}
	return false
}
