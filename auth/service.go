package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/todos-go/apperror"
	"github.com/user/todos-go/config"
)

const (
	// tokenTypeAccess is the claim value for access tokens.
	tokenTypeAccess = "access"
	// tokenTypeRefresh is the claim value for refresh tokens.
	tokenTypeRefresh = "refresh"

	tokenIssuer = "todos"
)

// AuthService provides registration, login and token management. Its
// dependencies are injected at construction time; there are no package-level
// singletons.
type AuthService struct {
	store      UserStore
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		store:      store,
		authConfig: authConfig,
	}
}

// CustomClaims defines the JWT payload: the user identifier plus the token
// type, embedded alongside the registered claims (exp, iat, nbf, ...).
type CustomClaims struct {
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Register creates a new user. A duplicate email yields a Conflict error;
// the password is hashed with bcrypt before it ever reaches the store.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	// Emails are stored exactly as received; uniqueness is case-sensitive,
	// so A@X.com and a@x.com are distinct accounts.
	user, err := s.store.CreateUser(ctx, req.Email, string(hashedPassword))
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("email already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// Login authenticates a user and returns tokens. An unknown email and a
// wrong password produce the same error so the API does not confirm whether
// an email is registered.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		log.Printf("database error in Login: %v", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return s.generateTokens(user.ID)
}

// RefreshToken validates a refresh token and mints a new access token.
// The refresh token itself is returned unchanged; it stays valid until it
// expires (there is no rotation or revocation).
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*TokenResponse, error) {
	claims, err := s.validateToken(refreshTokenString, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewAuthError("invalid refresh token", err)
	}

	newAccessToken, _, err := s.generateSpecificToken(claims.UserID, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate new access token", err)
	}

	return &TokenResponse{
		Token:        newAccessToken,
		RefreshToken: refreshTokenString,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.authConfig.AccessTokenDuration.Seconds()),
	}, nil
}

// generateTokens creates the access/refresh token pair for a user.
func (s *AuthService) generateTokens(userID int) (*TokenResponse, error) {
	accessToken, _, err := s.generateSpecificToken(userID, tokenTypeAccess, s.authConfig.AccessTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate access token", err)
	}

	refreshToken, _, err := s.generateSpecificToken(userID, tokenTypeRefresh, s.authConfig.RefreshTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate refresh token", err)
	}

	return &TokenResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.authConfig.AccessTokenDuration.Seconds()),
	}, nil
}

// generateSpecificToken creates a signed JWT with the given type and duration.
func (s *AuthService) generateSpecificToken(userID int, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(duration)
	claims := &CustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expirationTime, nil
}

// validateToken parses a JWT string and checks the signature, expiry and
// expected token type.
func (s *AuthService) validateToken(tokenString string, expectedTokenType string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.authConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedTokenType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedTokenType, claims.TokenType)
	}
	return claims, nil
}
