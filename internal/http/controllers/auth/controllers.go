// Package auth contiene los controllers de autenticación.
package auth

import (
	"time"

	svc "github.com/dropDatabas3/cvision/internal/http/services/auth"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

const (
	maxAuthBodySize = 64 * 1024 // 64KB
	contentTypeJSON = "application/json; charset=utf-8"
)

// CookieConfig controla cómo se emite la cookie del refresh token.
type CookieConfig struct {
	Name     string
	Domain   string
	SameSite string
	Secure   bool
	TTL      time.Duration
}

// Controllers agrupa todos los controllers del dominio auth.
type Controllers struct {
	OTP      *OTPController
	Register *RegisterController
	Login    *LoginController
	Refresh  *RefreshController
	Logout   *LogoutController
	Me       *MeController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Services, users core.UserRepository, cookie CookieConfig) *Controllers {
	return &Controllers{
		OTP:      NewOTPController(s.OTP),
		Register: NewRegisterController(s.Register, cookie),
		Login:    NewLoginController(s.Login, cookie),
		Refresh:  NewRefreshController(s.Refresh, cookie),
		Logout:   NewLogoutController(s.Logout, cookie),
		Me:       NewMeController(users),
	}
}
