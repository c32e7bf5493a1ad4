package diseases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("disease not found")
	ErrForbidden    = errors.New("forbidden")
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

type Input struct {
	Name       string
	Medication string
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: enter the disease name", ErrInvalidInput)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Disease, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Disease{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Disease{}, err
	}

	now := s.now()
	d := Disease{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Medication:  strings.TrimSpace(in.Medication),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Disease{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Disease, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Disease{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetForOwner: solo el dueño puede ver/editar/borrar.
func (s *Service) GetForOwner(ctx context.Context, id, ownerUserID string) (Disease, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Disease{}, err
	}
	if d.OwnerUserID != ownerUserID {
		return Disease{}, ErrForbidden
	}
	return d, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Disease, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in Input) (Disease, error) {
	if err := in.validate(); err != nil {
		return Disease{}, err
	}
	d, err := s.GetForOwner(ctx, id, ownerUserID)
	if err != nil {
		return Disease{}, err
	}

	d.Name = strings.TrimSpace(in.Name)
	d.Medication = strings.TrimSpace(in.Medication)
	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, d); err != nil {
		return Disease{}, err
	}
	return d, nil
}

// Delete no borra en cascada: los registros de síntomas de esta enfermedad quedan.
func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if _, err := s.GetForOwner(ctx, id, ownerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
