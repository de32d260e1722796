package auth

// LoginRequest represents the request body for POST /v1/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser identifica al dueño de la sesión en las respuestas de tokens.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// TokenResponse represents a session issued by register, login or refresh.
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	User         SessionUser `json:"user"`
}

// RefreshRequest represents the request body for POST /v1/auth/refresh-token.
// The token may also arrive via cookie; the body wins if both are present.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LogoutRequest represents the request body for POST /v1/auth/logout
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
