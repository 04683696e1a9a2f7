package models

// LoginRequest represents the JSON body for user login. Credentials are
// only checked for presence; correctness is established by comparing
// against the stored hash.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: john_doe_123
	Username string `json:"username"`

	// Password
	// required: true
	// example: SecurePassword123!
	Password string `json:"password"`
}

// TokenResponse represents a successful login response.
// swagger:model TokenResponse
type TokenResponse struct {
	// Bearer token
	// example: JWT_TOKEN
	AccessToken string `json:"access_token"`

	// Token type, always "bearer"
	// example: bearer
	TokenType string `json:"token_type"`
}
