package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todos-go/config"
)

func mintTokens(t *testing.T, cfg config.AuthConfig) *TokenResponse {
	t.Helper()
	svc := NewAuthService(newFakeUserStore(), cfg)
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	resp, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	return resp
}

func TestJWTMiddleware(t *testing.T) {
	cfg := testAuthConfig()
	tokens := mintTokens(t, cfg)

	var seenUserID int
	var nextCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		seenUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := JWTMiddleware(&cfg)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"bearer without token", "Bearer", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"refresh token used as access token", "Bearer " + tokens.RefreshToken, http.StatusUnauthorized},
		{"valid access token", "Bearer " + tokens.Token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled = false
			seenUserID = 0

			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Equal(t, 1, seenUserID, "user id from the token must reach the context")
			} else {
				assert.False(t, nextCalled, "handler must not run without a valid token")
			}
		})
	}
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	tokens := mintTokens(t, testAuthConfig())

	otherCfg := config.AuthConfig{
		JWTSecret:            "different-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 168 * time.Hour,
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a token signed by a different secret")
	})
	protected := JWTMiddleware(&otherCfg)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.Token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
