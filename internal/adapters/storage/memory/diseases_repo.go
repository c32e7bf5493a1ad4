package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"symptom-tracker/internal/domain/diseases"
)

type diseaseRepo struct {
	mu   sync.RWMutex
	byID map[string]diseases.Disease
}

func NewDiseaseRepo() diseases.Repository {
	return &diseaseRepo{
		byID: make(map[string]diseases.Disease),
	}
}

func (r *diseaseRepo) Create(ctx context.Context, d diseases.Disease) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("disease id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("disease already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *diseaseRepo) Update(ctx context.Context, d diseases.Disease) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return diseases.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *diseaseRepo) GetByID(ctx context.Context, id string) (diseases.Disease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return diseases.Disease{}, diseases.ErrNotFound
	}
	return d, nil
}

func (r *diseaseRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]diseases.Disease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]diseases.Disease, 0)
	for _, d := range r.byID {
		if d.OwnerUserID == ownerUserID {
			out = append(out, d)
		}
	}

	// created_at asc; id desempata para que el orden no dependa del map
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *diseaseRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return diseases.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
