package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"symptom-tracker/internal/session"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Ensure devuelve el documento del usuario y lo crea si falta
// (sign-up, o sign-in de una cuenta sin documento).
func (s *Service) Ensure(ctx context.Context, id, email string) (User, error) {
	u, err := s.GetByID(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	now := s.now()
	u = User{
		ID:        id,
		Email:     strings.TrimSpace(email),
		Gender:    GenderUnspecified,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

type ProfileInput struct {
	Birthdate string // YYYY-MM-DD
	Gender    string
}

func (s *Service) parseProfile(in ProfileInput) (time.Time, Gender, error) {
	bdRaw := strings.TrimSpace(in.Birthdate)
	if bdRaw == "" {
		return time.Time{}, "", fmt.Errorf("%w: enter your birthdate", ErrInvalidInput)
	}
	gender := Gender(strings.ToLower(strings.TrimSpace(in.Gender)))
	if gender == "" {
		return time.Time{}, "", fmt.Errorf("%w: select your gender", ErrInvalidInput)
	}
	if !gender.Valid() {
		return time.Time{}, "", fmt.Errorf("%w: gender must be male, female or unspecified", ErrInvalidInput)
	}

	bd, err := time.Parse(DateLayout, bdRaw)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: birthdate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if bd.After(s.now()) {
		return time.Time{}, "", fmt.Errorf("%w: birthdate cannot be in the future", ErrInvalidInput)
	}
	return bd, gender, nil
}

// UpdateProfile guarda fecha de nacimiento y género con semántica merge:
// si el documento no existe se crea, el resto de campos se conserva.
func (s *Service) UpdateProfile(ctx context.Context, id, email string, in ProfileInput) (User, error) {
	if strings.TrimSpace(id) == "" {
		return User{}, ErrInvalidInput
	}
	bd, gender, err := s.parseProfile(in)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u, err := s.GetByID(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		u = User{ID: id, Email: strings.TrimSpace(email), CreatedAt: now}
	default:
		return User{}, err
	}

	u.Birthdate = &bd
	u.Gender = gender
	u.UpdatedAt = now

	if err := s.repo.Upsert(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Current devuelve el perfil desde la sesión; la primera vez lo carga del
// store (creándolo si falta) y lo deja cacheado.
func (s *Service) Current(ctx context.Context, sess *session.Session) (User, error) {
	if sess == nil {
		return User{}, ErrNotFound
	}
	if p, ok := sess.Profile(); ok {
		return User{
			ID:        sess.UserID,
			Email:     p.Email,
			Birthdate: p.Birthdate,
			Gender:    Gender(p.Gender),
		}, nil
	}

	u, err := s.Ensure(ctx, sess.UserID, sess.Email)
	if err != nil {
		return User{}, err
	}
	Remember(sess, u)
	return u, nil
}

// Remember actualiza el perfil cacheado de la sesión.
func Remember(sess *session.Session, u User) {
	if sess == nil {
		return
	}
	sess.SetProfile(session.Profile{
		Email:     u.Email,
		Birthdate: u.Birthdate,
		Gender:    string(u.Gender),
	})
}
