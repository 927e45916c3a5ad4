// Data Transfer Objects for authentication requests and responses.
// The `validate` tags mirror what the API accepts: a syntactically valid
// email and a password of at least six characters.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"strongpassword123"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"strongpassword123"`
}

// TokenResponse is returned to the client upon successful login or token
// refresh. The access token is issued under the `token` key; there is no
// server-side session or revocation list, the token is simply valid until
// it expires. ExpiresIn is the access token lifetime in seconds.
type TokenResponse struct {
	Token        string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int64  `json:"expires_in" example:"3600"`
}

// RefreshTokenRequest represents the token refresh request payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
