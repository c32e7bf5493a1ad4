package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"symptom-tracker/internal/domain/symptoms"
)

type symptomRepo struct {
	mu   sync.RWMutex
	byID map[string]symptoms.Record
}

func NewSymptomRepo() symptoms.Repository {
	return &symptomRepo{
		byID: make(map[string]symptoms.Record),
	}
}

// clone evita que el caller comparta el *TimeOfDay guardado.
func clone(r symptoms.Record) symptoms.Record {
	if r.Time != nil {
		t := *r.Time
		r.Time = &t
	}
	return r
}

func (r *symptomRepo) Create(ctx context.Context, rec symptoms.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("symptom record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("symptom record already exists")
	}
	r.byID[rec.ID] = clone(rec)
	return nil
}

func (r *symptomRepo) Update(ctx context.Context, rec symptoms.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return symptoms.ErrNotFound
	}
	r.byID[rec.ID] = clone(rec)
	return nil
}

func (r *symptomRepo) GetByID(ctx context.Context, id string) (symptoms.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return symptoms.Record{}, symptoms.ErrNotFound
	}
	return clone(rec), nil
}

func (r *symptomRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]symptoms.Record, error) {
	return r.list(func(rec symptoms.Record) bool {
		return rec.OwnerUserID == ownerUserID
	}), nil
}

func (r *symptomRepo) ListByOwnerAndDate(ctx context.Context, ownerUserID, date string) ([]symptoms.Record, error) {
	return r.list(func(rec symptoms.Record) bool {
		return rec.OwnerUserID == ownerUserID && rec.Date == date
	}), nil
}

func (r *symptomRepo) list(match func(symptoms.Record) bool) []symptoms.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]symptoms.Record, 0)
	for _, rec := range r.byID {
		if match(rec) {
			out = append(out, clone(rec))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *symptomRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return symptoms.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
