package identitytoolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symptom-tracker/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier con accounts:lookup.
// El middleware solo lo llama cuando el token no tiene sesión abierta.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.LookupToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("identity toolkit verify failed: %w", err)
	}
	return claims, nil
}
