package auth

// RegisterRequest represents the request body for POST /v1/auth/register
type RegisterRequest struct {
	// Name is required.
	Name string `json:"name"`
	// Email is required and must be a valid email format.
	Email string `json:"email"`
	// Password is required.
	Password string `json:"password"`
	// OTP is the 6-digit code sent to the email.
	OTP string `json:"otp"`
}

// Un registro exitoso abre sesión: la respuesta es el mismo TokenResponse
// que emite el login, con la cookie del refresh incluida.
