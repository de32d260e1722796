// Package email envía correos transaccionales (código OTP de registro).
package email

import "errors"

var (
	ErrTemplateRender = errors.New("email: template render failed")
	ErrSendFailed     = errors.New("email: send failed")
)

// Sender envía un email con cuerpo HTML y texto plano.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) error
}

// SMTPConfig configuración para conectarse a un servidor SMTP.
type SMTPConfig struct {
	Host      string // Host del servidor SMTP
	Port      int    // Puerto (default 587)
	Username  string // Usuario para autenticación
	Password  string // Password (plain)
	FromEmail string // Email del remitente
	TLSMode   string // "auto" | "starttls" | "ssl" | "none"

	// InsecureSkipVerify deshabilita la verificación del certificado TLS.
	// Sólo para desarrollo.
	InsecureSkipVerify bool
}
