package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password is too weak")
)

// IdentityProvider registra y autentica usuarios por email + password.
// Los adapters traducen sus errores a los sentinels de arriba.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, error)
}
