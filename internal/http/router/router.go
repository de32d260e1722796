// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authctrl "github.com/dropDatabas3/cvision/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/cvision/internal/http/controllers/health"
	resumectrl "github.com/dropDatabas3/cvision/internal/http/controllers/resume"
	httperrors "github.com/dropDatabas3/cvision/internal/http/errors"
	mw "github.com/dropDatabas3/cvision/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/observability/metrics"
	"github.com/dropDatabas3/cvision/internal/rate"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	Auth   *authctrl.Controllers
	Resume *resumectrl.Controller
	Health *healthctrl.HealthController

	Issuer    *jwtx.Issuer
	Blacklist *blacklist.Blacklist

	CORSAllowedOrigins []string

	// Limiters por endpoint sensible. nil desactiva el límite.
	SendOTPLimiter rate.Limiter
	LoginLimiter   rate.Limiter
	RefreshLimiter rate.Limiter

	// Handler de /metrics. nil desactiva el endpoint.
	MetricsHandler http.Handler
}

// New construye el handler raíz con todas las rutas registradas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Infra global: recover primero, después request ID y métricas.
	// Health y metrics quedan fuera del logging (son muy frecuentes).
	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(metrics.WithHTTP)

	registerHealthRoutes(r, deps)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// Rutas de API: headers de seguridad, CORS y logging.
	r.Group(func(r chi.Router) {
		r.Use(mw.WithSecurityHeaders())
		r.Use(mw.WithCORS(deps.CORSAllowedOrigins))
		r.Use(mw.WithLogging())

		registerAuthRoutes(r, deps)
		registerResumeRoutes(r, deps)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	return r
}

// limited aplica rate limiting si hay limiter configurado.
func limited(limiter rate.Limiter) mw.Middleware {
	return mw.WithRateLimit(limiter, mw.IPRateKey)
}
