package router

import (
	"github.com/go-chi/chi/v5"
)

// registerHealthRoutes registra rutas de health check.
// Son públicas y corren solo con la infra base (sin logging).
func registerHealthRoutes(r chi.Router, deps Deps) {
	h := deps.Health
	if h == nil {
		return
	}

	r.Get("/healthz", h.Healthz)
	r.Get("/readyz", h.Readyz)
}
