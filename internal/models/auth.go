package models

// TokenResponse holds the response from the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the body of an email/password registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AppleSignInRequest is the body of a Sign in with Apple exchange.
type AppleSignInRequest struct {
	IdentityToken     string  `json:"identity_token"`
	AuthorizationCode string  `json:"authorization_code"`
	UserID            string  `json:"user_id"`
	Email             *string `json:"email,omitempty"`
	FullName          *string `json:"full_name,omitempty"`
}
