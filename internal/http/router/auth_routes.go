package router

import (
	"github.com/go-chi/chi/v5"

	mw "github.com/dropDatabas3/cvision/internal/http/middlewares"
)

// registerAuthRoutes registra las rutas de autenticación.
func registerAuthRoutes(r chi.Router, deps Deps) {
	c := deps.Auth
	if c == nil {
		return
	}

	// Públicas, con rate limit por IP
	r.With(limited(deps.SendOTPLimiter)).Post("/v1/auth/send-otp", c.OTP.SendOTP)
	r.With(limited(deps.SendOTPLimiter)).Post("/v1/auth/register", c.Register.Register)
	r.With(limited(deps.LoginLimiter)).Post("/v1/auth/login", c.Login.Login)
	r.With(limited(deps.RefreshLimiter)).Post("/v1/auth/refresh-token", c.Refresh.Refresh)

	// Protegidas: access token válido y no revocado
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAuth(deps.Issuer, deps.Blacklist))

		r.Post("/v1/auth/logout", c.Logout.Logout)
		r.Get("/v1/me", c.Me.Me)
	})
}
