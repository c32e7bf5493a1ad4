package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"symptom-tracker/internal/ports/auth"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

var (
	ErrRevoked      = errors.New("session revoked")
	ErrExpired      = errors.New("token expired")
	ErrInvalidToken = errors.New("session token is empty")
)

const (
	DefaultTTL         = time.Hour
	DefaultMaxSessions = 10000
)

type Config struct {
	TTL         time.Duration
	MaxSessions int
}

// Manager guarda las sesiones activas por token en un LRU con expiración.
// Una sesión vive hasta TTL o hasta que expire su token, lo que ocurra antes.
//
// Los tokens cerrados con End van a un mapa de revocados que no se recorta por
// tamaño: cada entrada dura hasta que el token expira (mínimo TTL), así un
// token aún válido para el proveedor de identidad no se reabre con Resume.
type Manager struct {
	active *expirable.LRU[string, *Session]
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // token -> rechazar hasta

	now func() time.Time
}

func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	size := cfg.MaxSessions
	if size <= 0 {
		size = DefaultMaxSessions
	}

	return &Manager{
		active:  expirable.NewLRU[string, *Session](size, nil, ttl),
		ttl:     ttl,
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Begin abre una sesión nueva (sign-in / sign-up).
func (m *Manager) Begin(token string, claims auth.Claims) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	now := m.now()
	if !claims.ExpiresAt.IsZero() && !now.Before(claims.ExpiresAt) {
		return nil, ErrExpired
	}

	m.mu.Lock()
	delete(m.revoked, token)
	m.mu.Unlock()

	expires := now.Add(m.ttl)
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(expires) {
		expires = claims.ExpiresAt
	}

	s := &Session{
		Token:          token,
		UserID:         claims.UserID,
		Email:          claims.Email,
		StartedAt:      now,
		ExpiresAt:      expires,
		TokenExpiresAt: claims.ExpiresAt,
	}
	m.active.Add(token, s)
	return s, nil
}

// Lookup devuelve la sesión activa; una sesión vencida se descarta.
func (m *Manager) Lookup(token string) (*Session, bool) {
	token = strings.TrimSpace(token)
	s, ok := m.active.Get(token)
	if !ok {
		return nil, false
	}
	if !m.now().Before(s.ExpiresAt) {
		m.active.Remove(token)
		return nil, false
	}
	return s, true
}

func (m *Manager) IsRevoked(token string) bool {
	token = strings.TrimSpace(token)

	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.revoked[token]
	if !ok {
		return false
	}
	if !m.now().Before(until) {
		delete(m.revoked, token)
		return false
	}
	return true
}

// Resume devuelve la sesión del token o la crea (token emitido por el
// proveedor y verificado, pero sin sign-in en este proceso, p.ej. tras un
// reinicio). Un token revocado o vencido no se reabre.
func (m *Manager) Resume(token string, claims auth.Claims) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	if m.IsRevoked(token) {
		return nil, ErrRevoked
	}
	if s, ok := m.Lookup(token); ok && s.UserID == claims.UserID {
		return s, nil
	}
	return m.Begin(token, claims)
}

// End cierra la sesión (sign-out).
func (m *Manager) End(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}

	now := m.now()
	until := now.Add(m.ttl)
	if s, ok := m.active.Peek(token); ok && s.TokenExpiresAt.After(until) {
		until = s.TokenExpiresAt
	}
	m.active.Remove(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneRevoked(now)
	m.revoked[token] = until
}

// pruneRevoked borra las revocaciones cuyo token ya venció. Requiere m.mu.
func (m *Manager) pruneRevoked(now time.Time) {
	for tok, until := range m.revoked {
		if !now.Before(until) {
			delete(m.revoked, tok)
		}
	}
}

func (m *Manager) Len() int {
	return m.active.Len()
}

// RevokedLen cuenta las revocaciones vigentes.
func (m *Manager) RevokedLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneRevoked(m.now())
	return len(m.revoked)
}
