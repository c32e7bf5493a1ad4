package auth

import (
	"context"
	"errors"
)

var ErrCredentialNotFound = errors.New("credential not found")

// CredentialStore persiste las credenciales del proveedor embebido.
// Create devuelve ErrEmailExists si el email ya está registrado.
type CredentialStore interface {
	CreateCredential(ctx context.Context, c Credential) error
	CredentialByEmail(ctx context.Context, email string) (Credential, error)
}
