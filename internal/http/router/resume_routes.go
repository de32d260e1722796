package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/cvision/internal/http/middlewares"
)

// registerResumeRoutes registra las rutas de CVs. Todas requieren auth.
func registerResumeRoutes(r chi.Router, deps Deps) {
	c := deps.Resume
	if c == nil {
		return
	}

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(deps.Issuer, deps.Blacklist))

		r.Post("/v1/resumes", c.Upload)
		r.Get("/v1/resumes", c.List)
		r.Get("/v1/resumes/{id}", c.Get)
	})
}
