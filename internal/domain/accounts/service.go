package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/ports/auth"
	"symptom-tracker/internal/session"
)

const MinPasswordLength = 6

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotConfigured = errors.New("identity provider not configured")
)

// Service orquesta proveedor de identidad, documento de usuario y sesión.
type Service struct {
	identity auth.IdentityProvider
	users    *users.Service
	sessions *session.Manager
}

// NewService acepta identity nil (modo dev): signup/signin responden
// ErrNotConfigured y solo queda disponible signout.
func NewService(identity auth.IdentityProvider, usersSvc *users.Service, sessions *session.Manager) *Service {
	return &Service{identity: identity, users: usersSvc, sessions: sessions}
}

type SignUpInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Result es lo que ve el cliente tras signup/signin.
type Result struct {
	Token     string
	ExpiresAt time.Time
	User      users.User
	Session   *session.Session
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("enter your email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", invalid("email is not valid")
	}
	return email, nil
}

func (in SignUpInput) validate() (string, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return "", err
	}
	if len([]rune(in.Password)) < MinPasswordLength {
		return "", invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if in.Password != in.ConfirmPassword {
		return "", invalid("passwords do not match")
	}
	return email, nil
}

// SignUp registra la cuenta, crea el documento de usuario (sin fecha de
// nacimiento, género unspecified) y abre sesión.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Result, error) {
	email, err := in.validate()
	if err != nil {
		return Result{}, err
	}
	if s.identity == nil {
		return Result{}, ErrNotConfigured
	}

	id, err := s.identity.SignUp(ctx, email, in.Password)
	if err != nil {
		return Result{}, err
	}
	return s.open(ctx, id)
}

// SignIn autentica y carga (o crea si falta) el documento de usuario.
func (s *Service) SignIn(ctx context.Context, email, password string) (Result, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return Result{}, err
	}
	if password == "" {
		return Result{}, invalid("enter your password")
	}
	if s.identity == nil {
		return Result{}, ErrNotConfigured
	}

	id, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return Result{}, err
	}
	return s.open(ctx, id)
}

func (s *Service) open(ctx context.Context, id auth.Identity) (Result, error) {
	u, err := s.users.Ensure(ctx, id.UserID, id.Email)
	if err != nil {
		return Result{}, err
	}

	sess, err := s.sessions.Begin(id.Token, id.Claims())
	if err != nil {
		return Result{}, err
	}
	users.Remember(sess, u)

	return Result{
		Token:     id.Token,
		ExpiresAt: id.ExpiresAt,
		User:      u,
		Session:   sess,
	}, nil
}

// SignOut cierra la sesión; el token queda revocado hasta que expire.
func (s *Service) SignOut(sess *session.Session) {
	if sess == nil {
		return
	}
	s.sessions.End(sess.Token)
}
