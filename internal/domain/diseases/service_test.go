package diseases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Disease
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Disease{}}
}

func (r *testRepo) Create(ctx context.Context, d Disease) error {
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Disease, error) {
	d, ok := r.byID[id]
	if !ok {
		return Disease{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Disease, error) {
	out := make([]Disease, 0)
	for _, d := range r.byID {
		if d.OwnerUserID == ownerUserID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, d Disease) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestService_CreateRequiresName(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Create(context.Background(), "u-1", Input{Name: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "enter the disease name")

	_, err = svc.Create(context.Background(), "", Input{Name: "Migraine"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_OwnerOnlyAccess(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	d, err := svc.Create(ctx, "u-1", Input{Name: " Migraine ", Medication: " Sumatriptan "})
	require.NoError(t, err)
	assert.Equal(t, "Migraine", d.Name)
	assert.Equal(t, "Sumatriptan", d.Medication)

	owner, err := svc.OwnerOf(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "u-1", owner)

	_, err = svc.GetForOwner(ctx, d.ID, "u-2")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, d.ID, "u-2", Input{Name: "Other"})
	require.ErrorIs(t, err, ErrForbidden)

	require.ErrorIs(t, svc.Delete(ctx, d.ID, "u-2"), ErrForbidden)

	svc.now = func() time.Time { return fixed.Add(time.Hour) }
	updated, err := svc.Update(ctx, d.ID, "u-1", Input{Name: "Cluster headache"})
	require.NoError(t, err)
	assert.Equal(t, "Cluster headache", updated.Name)
	assert.Empty(t, updated.Medication)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	require.NoError(t, svc.Delete(ctx, d.ID, "u-1"))
	_, err = svc.GetByID(ctx, d.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
