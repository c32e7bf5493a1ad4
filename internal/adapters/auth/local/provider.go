package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"symptom-tracker/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinSecretLength = 32
	issuer          = "symptom-tracker"
)

var (
	ErrSecretTooShort = errors.New("local identity secret must be at least 32 bytes")
	ErrInvalidToken   = errors.New("invalid token")
	ErrNoStore        = errors.New("local identity requires a credential store")
)

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Provider es el proveedor de identidad embebido: hashes bcrypt en el
// CredentialStore del backend elegido y tokens HS256.
// Implementa auth.IdentityProvider y auth.AuthVerifier.
type Provider struct {
	store auth.CredentialStore

	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewProvider(secret string, ttl time.Duration, store auth.CredentialStore) (*Provider, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if store == nil {
		return nil, ErrNoStore
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Provider{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) SignUp(ctx context.Context, email, password string) (auth.Identity, error) {
	if len(password) < 6 {
		return auth.Identity{}, auth.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	cred := auth.Credential{
		UserID:       uuid.NewString(),
		Email:        normalize(email),
		PasswordHash: hash,
		CreatedAt:    p.now().UTC(),
	}
	if err := p.store.CreateCredential(ctx, cred); err != nil {
		return auth.Identity{}, err
	}
	return p.issue(cred)
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (auth.Identity, error) {
	cred, err := p.store.CredentialByEmail(ctx, normalize(email))
	if err != nil {
		if errors.Is(err, auth.ErrCredentialNotFound) {
			return auth.Identity{}, auth.ErrInvalidCredentials
		}
		return auth.Identity{}, fmt.Errorf("load credential: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)); err != nil {
		return auth.Identity{}, auth.ErrInvalidCredentials
	}
	return p.issue(cred)
}

func (p *Provider) issue(cred auth.Credential) (auth.Identity, error) {
	now := p.now()
	exp := now.Add(p.ttl)

	claims := tokenClaims{
		Email: cred.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   cred.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("sign token: %w", err)
	}

	return auth.Identity{
		UserID:    cred.UserID,
		Email:     cred.Email,
		Token:     signed,
		ExpiresAt: exp,
	}, nil
}

// Verify valida firma, emisor y expiración.
func (p *Provider) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return p.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
