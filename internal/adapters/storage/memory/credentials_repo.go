package memory

import (
	"context"
	"sync"

	"symptom-tracker/internal/ports/auth"
)

type credentialRepo struct {
	mu      sync.RWMutex
	byEmail map[string]auth.Credential
}

func NewCredentialRepo() auth.CredentialStore {
	return &credentialRepo{
		byEmail: make(map[string]auth.Credential),
	}
}

func (r *credentialRepo) CreateCredential(ctx context.Context, c auth.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[c.Email]; ok {
		return auth.ErrEmailExists
	}
	c.PasswordHash = append([]byte(nil), c.PasswordHash...)
	r.byEmail[c.Email] = c
	return nil
}

func (r *credentialRepo) CredentialByEmail(ctx context.Context, email string) (auth.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byEmail[email]
	if !ok {
		return auth.Credential{}, auth.ErrCredentialNotFound
	}
	return c, nil
}
