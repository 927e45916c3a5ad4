// Bearer-token middleware. Every protected route runs through JWTMiddleware,
// which turns the Authorization header into a user id in the request context.
// Handlers downstream never see the token, only the verified identity.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/todos-go/apperror"
	"github.com/user/todos-go/config"
)

// ContextKey is a dedicated type for context keys to avoid collisions with
// other packages.
type ContextKey string

// UserIDKey is the context key under which the authenticated user's id is stored.
const UserIDKey ContextKey = "userID"

// JWTMiddleware verifies the bearer token from the Authorization header and
// adds the user id to the request context. Missing, malformed and
// unverifiable tokens are all rejected with the same 401, matching the
// error policy of the rest of the API.
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			tokenString := parts[1]
			claims := &CustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				WriteError(w, r, apperror.NewAuthError("invalid token", err))
				return
			}

			// Refresh tokens are not credentials for API calls.
			if claims.TokenType != tokenTypeAccess {
				WriteError(w, r, apperror.NewAuthError("invalid token", nil))
				return
			}
			if claims.UserID == 0 {
				WriteError(w, r, apperror.NewAuthError("invalid token: user_id claim is missing", nil))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user id set by
// JWTMiddleware. Returns 0 and false if no identity is present.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
