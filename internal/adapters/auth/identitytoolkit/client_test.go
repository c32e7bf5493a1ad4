package identitytoolkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"symptom-tracker/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	accounts map[string]string // email -> password
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("key") != "test-key" {
		writeErr(w, http.StatusBadRequest, "API_KEY_INVALID")
		return
	}

	var in map[string]any
	_ = json.NewDecoder(r.Body).Decode(&in)
	email, _ := in["email"].(string)
	password, _ := in["password"].(string)

	switch r.URL.Path {
	case "/v1/accounts:signUp":
		if _, ok := f.accounts[email]; ok {
			writeErr(w, http.StatusBadRequest, "EMAIL_EXISTS")
			return
		}
		if len(password) < 6 {
			writeErr(w, http.StatusBadRequest, "WEAK_PASSWORD : Password should be at least 6 characters")
			return
		}
		f.accounts[email] = password
		writeToken(w, email)
	case "/v1/accounts:signInWithPassword":
		if p, ok := f.accounts[email]; !ok || p != password {
			writeErr(w, http.StatusBadRequest, "INVALID_LOGIN_CREDENTIALS")
			return
		}
		writeToken(w, email)
	case "/v1/accounts:lookup":
		tok, _ := in["idToken"].(string)
		if tok != "tok-a@b.com" {
			writeErr(w, http.StatusBadRequest, "INVALID_ID_TOKEN")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]string{{"localId": "uid-a@b.com", "email": "a@b.com"}},
		})
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeToken(w http.ResponseWriter, email string) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"localId":   "uid-" + email,
		"email":     email,
		"idToken":   "tok-" + email,
		"expiresIn": "3600",
	})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": status, "message": msg}})
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(&fakeProvider{accounts: map[string]string{}})
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/v1", APIKey: "test-key", Timeout: time.Second})
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestClient_SignUpSignInLookup(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	id, err := c.SignUp(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-a@b.com", id.UserID)
	assert.Equal(t, "tok-a@b.com", id.Token)
	assert.Equal(t, time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), id.ExpiresAt)

	_, err = c.SignUp(ctx, "a@b.com", "secret1")
	require.ErrorIs(t, err, auth.ErrEmailExists)

	_, err = c.SignUp(ctx, "c@d.com", "123")
	require.ErrorIs(t, err, auth.ErrWeakPassword)

	_, err = c.SignIn(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	id, err = c.SignIn(ctx, "a@b.com", "secret1")
	require.NoError(t, err)

	claims, err := NewVerifier(c).Verify(ctx, id.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "uid-a@b.com", Email: "a@b.com"}, claims)

	_, err = NewVerifier(c).Verify(ctx, "forged")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = NewVerifier(c).Verify(ctx, " ")
	require.ErrorIs(t, err, ErrTokenEmpty)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "uid-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	assert.True(t, exp.Equal(tokenExpiry(tok)))
	assert.True(t, tokenExpiry("tok-a@b.com").IsZero())
}
