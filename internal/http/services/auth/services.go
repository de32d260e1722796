// Package auth contiene los services de autenticación.
package auth

import (
	"context"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/cvision/internal/http/dto/auth"
	jwtx "github.com/dropDatabas3/cvision/internal/jwt"
	"github.com/dropDatabas3/cvision/internal/security/blacklist"
	"github.com/dropDatabas3/cvision/internal/security/otp"
	"github.com/dropDatabas3/cvision/internal/store/core"
)

// Errores de los services auth. Los controllers los mapean a errores HTTP.
var (
	ErrMissingFields      = fmt.Errorf("missing required fields")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrSocialOnlyAccount  = fmt.Errorf("account has no password login")
	ErrInvalidOTP         = fmt.Errorf("invalid or expired otp")
	ErrEmailInUse         = fmt.Errorf("email already in use")
	ErrInvalidRefresh     = fmt.Errorf("invalid refresh token")
	ErrReuseDetected      = fmt.Errorf("refresh token reuse detected")
	ErrTokenIssueFailed   = fmt.Errorf("failed to issue token")
	ErrOTPDeliveryFailed  = fmt.Errorf("failed to deliver otp")
)

// TokenResult es la sesión emitida por register, login o refresh.
type TokenResult struct {
	UserID       string
	Name         string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// OTPSender abstrae el envío del código por email.
type OTPSender func(to, name, code string, ttl time.Duration) error

// OTPService emite códigos de verificación para el registro.
type OTPService interface {
	Send(ctx context.Context, name, email string) error
}

// RegisterService crea cuentas nuevas validando el OTP y abre sesión.
type RegisterService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*TokenResult, error)
}

// LoginService autentica por email y password.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*TokenResult, error)
}

// RefreshService rota el refresh token y detecta reuso.
type RefreshService interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenResult, error)
}

// LogoutService revoca el access token y elimina la sesión del refresh.
type LogoutService interface {
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// Deps contiene las dependencias para crear los services auth.
type Deps struct {
	Users     core.UserRepository
	Issuer    *jwtx.Issuer
	OTPStore  *otp.Store
	Blacklist *blacklist.Blacklist
	SendOTP   OTPSender
}

// Services agrupa todos los services del dominio auth.
type Services struct {
	OTP      OTPService
	Register RegisterService
	Login    LoginService
	Refresh  RefreshService
	Logout   LogoutService
}

// NewServices crea el agregador de services auth.
func NewServices(d Deps) Services {
	return Services{
		OTP:      NewOTPService(OTPDeps{Store: d.OTPStore, Send: d.SendOTP}),
		Register: NewRegisterService(RegisterDeps{Users: d.Users, Store: d.OTPStore, Issuer: d.Issuer}),
		Login:    NewLoginService(LoginDeps{Users: d.Users, Issuer: d.Issuer}),
		Refresh:  NewRefreshService(RefreshDeps{Users: d.Users, Issuer: d.Issuer}),
		Logout:   NewLogoutService(LogoutDeps{Users: d.Users, Issuer: d.Issuer, Blacklist: d.Blacklist}),
	}
}
