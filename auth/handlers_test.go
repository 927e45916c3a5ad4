package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers() *Handlers {
	return NewHandlers(NewAuthService(newFakeUserStore(), testAuthConfig()))
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleRegisterHidesPassword(t *testing.T) {
	h := newTestHandlers()

	rec := postJSON(t, h.HandleRegister(), `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a@x.com", body["email"])
	// Neither the plaintext nor the hash may appear in the response.
	_, hasPassword := body["password"]
	assert.False(t, hasPassword)
	assert.NotContains(t, rec.Body.String(), "secret1")
}

func TestHandleRegisterValidation(t *testing.T) {
	h := newTestHandlers()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"bad email", `{"email":"not-an-email","password":"secret1"}`},
		{"short password", `{"email":"a@x.com","password":"abc"}`},
		{"malformed json", `{"email":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleRegister(), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterConflictOverHTTP(t *testing.T) {
	h := newTestHandlers()

	rec := postJSON(t, h.HandleRegister(), `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.HandleRegister(), `{"email":"a@x.com","password":"secret2"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginOverHTTP(t *testing.T) {
	h := newTestHandlers()

	rec := postJSON(t, h.HandleRegister(), `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.HandleLogin(), `{"email":"a@x.com","password":"wrong1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h.HandleLogin(), `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestRefreshOverHTTP(t *testing.T) {
	h := newTestHandlers()

	rec := postJSON(t, h.HandleRegister(), `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(t, h.HandleLogin(), `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var login TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = postJSON(t, h.HandleRefreshToken(), `{"refresh_token":"`+login.RefreshToken+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, h.HandleRefreshToken(), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.HandleRefreshToken(), `{"refresh_token":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
