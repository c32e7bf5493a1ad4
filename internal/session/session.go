package session

import (
	"sync"
	"time"

	"symptom-tracker/internal/ports/auth"
)

// Profile es la copia cacheada del perfil del usuario.
// No importa domain/users para no crear ciclos (users -> session).
type Profile struct {
	Email     string
	Birthdate *time.Time
	Gender    string
}

// Session es el contexto explícito del usuario autenticado: se crea en el
// sign-in, se borra en el sign-out y viaja por el request (middleware).
type Session struct {
	Token     string
	UserID    string
	Email     string
	StartedAt time.Time
	ExpiresAt time.Time // min(inicio+TTL, expiración del token)

	// cero si el proveedor no la informó
	TokenExpiresAt time.Time

	mu      sync.RWMutex
	profile Profile
	loaded  bool
}

func (s *Session) Claims() auth.Claims {
	return auth.Claims{UserID: s.UserID, Email: s.Email, ExpiresAt: s.TokenExpiresAt}
}

// Profile devuelve el perfil cacheado; ok=false si aún no se cargó.
func (s *Session) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile, s.loaded
}

func (s *Session) SetProfile(p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.loaded = true
}
