// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"os"
	"time"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/health"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
// Los checks que quedan en nil se reportan como "disabled".
type Deps struct {
	Issuer       *jwtx.Issuer
	DBCheck      func(ctx context.Context) error
	CacheCheck   func(ctx context.Context) error
	ScoringCheck func(ctx context.Context) error
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
	}

	if v := os.Getenv("SERVICE_VERSION"); v != "" {
		response.Version = v
	}
	if git := os.Getenv("SERVICE_COMMIT"); git != "" {
		response.Commit = git
	}

	hasErrors := false
	hasCriticalErrors := false

	// 1) Postgres (crítico: sin DB no hay usuarios ni CVs)
	if s.deps.DBCheck != nil {
		if err := s.deps.DBCheck(ctx); err != nil {
			response.Components["postgres"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasCriticalErrors = true
			log.Error("postgres unavailable", logger.Err(err))
		} else {
			response.Components["postgres"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["postgres"] = dto.HealthStatus{
			Status:  "error",
			Message: "store not initialized",
		}
		hasCriticalErrors = true
	}

	// 2) Firma JWT (crítico): sign + verify en memoria
	if s.deps.Issuer != nil {
		if err := s.checkIssuer(); err != nil {
			response.Components["jwt"] = dto.HealthStatus{
				Status:  "error",
				Message: err.Error(),
			}
			hasCriticalErrors = true
			log.Error("jwt selfcheck failed", logger.Err(err))
		} else {
			response.Components["jwt"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["jwt"] = dto.HealthStatus{
			Status:  "error",
			Message: "issuer not initialized",
		}
		hasCriticalErrors = true
	}

	// 3) Cache (no crítico: blacklist y OTP funcionan fail-open / degradados)
	if s.deps.CacheCheck != nil {
		if err := s.deps.CacheCheck(ctx); err != nil {
			response.Components["cache"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasErrors = true
			log.Error("cache unavailable", logger.Err(err))
		} else {
			response.Components["cache"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["cache"] = dto.HealthStatus{Status: "disabled"}
	}

	// 4) Motor de análisis (no crítico: los CVs quedan en "uploaded")
	if s.deps.ScoringCheck != nil {
		if err := s.deps.ScoringCheck(ctx); err != nil {
			response.Components["scoring_engine"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasErrors = true
			log.Warn("scoring engine unavailable", logger.Err(err))
		} else {
			response.Components["scoring_engine"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["scoring_engine"] = dto.HealthStatus{
			Status:  "disabled",
			Message: "analysis disabled",
		}
	}

	if hasCriticalErrors {
		response.Status = "unavailable"
	} else if hasErrors {
		response.Status = "degraded"
	} else {
		response.Status = "ready"
	}

	return response
}

func (s *healthService) checkIssuer() error {
	signed, _, err := s.deps.Issuer.Sign("selfcheck", "selfcheck@localhost", jwtx.KindAccess)
	if err != nil {
		return fmt.Errorf("sign failed: %w", err)
	}
	if _, err := s.deps.Issuer.Parse(signed, jwtx.KindAccess); err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	return nil
}
