package auth

// SendOTPRequest represents the request body for POST /v1/auth/send-otp
type SendOTPRequest struct {
	// Name is used in the email greeting. Optional.
	Name string `json:"name"`
	// Email is required and must be a valid email format.
	Email string `json:"email"`
}

// SendOTPResponse acknowledges the dispatch with the target email.
type SendOTPResponse struct {
	Email string `json:"email"`
}
