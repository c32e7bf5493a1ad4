package identitytoolkit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"symptom-tracker/internal/platform/httpclient"
	"symptom-tracker/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("identity toolkit client not configured")
	ErrUnauthorized  = errors.New("identity toolkit unauthorized")
	ErrUpstream      = errors.New("identity toolkit upstream error")
)

const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Config del cliente. APIKey viaja como ?key= en cada llamada.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client habla con la API REST del proveedor hospedado
// (accounts:signUp, accounts:signInWithPassword, accounts:lookup).
type Client struct {
	http *httpclient.Client
	now  func() time.Time
}

func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	hc, err := httpclient.New(cfg.Timeout,
		httpclient.WithBaseURL(base),
		httpclient.WithQueryParam("key", key),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, now: time.Now}, nil
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type tokenResponse struct {
	LocalID   string `json:"localId"`
	Email     string `json:"email"`
	IDToken   string `json:"idToken"`
	ExpiresIn string `json:"expiresIn"` // segundos, como string
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	} `json:"users"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) (auth.Identity, error) {
	return c.passwordCall(ctx, "accounts:signUp", email, password)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	return c.passwordCall(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) passwordCall(ctx context.Context, path, email, password string) (auth.Identity, error) {
	if c == nil || c.http == nil {
		return auth.Identity{}, ErrNotConfigured
	}

	var out tokenResponse
	err := c.http.PostJSON(ctx, path, passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out)
	if err != nil {
		return auth.Identity{}, mapError(err)
	}

	out.LocalID = strings.TrimSpace(out.LocalID)
	if out.LocalID == "" || strings.TrimSpace(out.IDToken) == "" {
		return auth.Identity{}, fmt.Errorf("%w: response missing localId or idToken", ErrUpstream)
	}

	id := auth.Identity{
		UserID: out.LocalID,
		Email:  strings.TrimSpace(out.Email),
		Token:  out.IDToken,
	}
	if id.Email == "" {
		id.Email = email
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(out.ExpiresIn)); err == nil && secs > 0 {
		id.ExpiresAt = c.now().Add(time.Duration(secs) * time.Second)
	}
	return id, nil
}

// LookupToken valida un ID token y devuelve sus claims.
func (c *Client) LookupToken(ctx context.Context, token string) (auth.Claims, error) {
	if c == nil || c.http == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out lookupResponse
	if err := c.http.PostJSON(ctx, "accounts:lookup", map[string]string{"idToken": token}, &out); err != nil {
		return auth.Claims{}, mapError(err)
	}
	if len(out.Users) == 0 || strings.TrimSpace(out.Users[0].LocalID) == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	return auth.Claims{
		UserID:    strings.TrimSpace(out.Users[0].LocalID),
		Email:     strings.TrimSpace(out.Users[0].Email),
		ExpiresAt: tokenExpiry(token),
	}, nil
}

// tokenExpiry lee el exp del ID token. La firma ya la validó accounts:lookup;
// si el token no es un JWT se devuelve cero (sin expiración conocida).
func tokenExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// mapError traduce los códigos del proveedor a los sentinels de ports/auth.
// El mensaje puede traer detalle: "WEAK_PASSWORD : Password should be ...".
func mapError(err error) error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var body errorResponse
	_ = httpErr.DecodeBody(&body)
	code, _, _ := strings.Cut(body.Error.Message, ":")
	code = strings.TrimSpace(code)

	switch code {
	case "EMAIL_EXISTS":
		return auth.ErrEmailExists
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return auth.ErrInvalidCredentials
	case "WEAK_PASSWORD":
		return auth.ErrWeakPassword
	case "INVALID_ID_TOKEN", "TOKEN_EXPIRED", "USER_NOT_FOUND":
		return ErrUnauthorized
	}

	if httpErr.StatusCode == 401 || httpErr.StatusCode == 403 {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: status=%d %s", ErrUpstream, httpErr.StatusCode, code)
}
