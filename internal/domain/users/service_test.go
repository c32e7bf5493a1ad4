package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"symptom-tracker/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID    map[string]User
	failErr error
	gets    int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	r.gets++
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) Upsert(ctx context.Context, u User) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.byID[u.ID] = u
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 34, Age(time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 33, Age(time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 33, Age(time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, Age(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestService_Ensure_CreatesMissingWithUnspecifiedGender(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	u, err := svc.Ensure(context.Background(), "u-1", " a@b.c ")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
	assert.Equal(t, GenderUnspecified, u.Gender)
	assert.Nil(t, u.Birthdate)

	again, err := svc.Ensure(context.Background(), "u-1", "other@b.c")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", again.Email)
}

func TestService_UpdateProfile_Validation(t *testing.T) {
	svc := newTestService(newTestRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		in      ProfileInput
		wantMsg string
	}{
		{name: "missing birthdate", in: ProfileInput{Gender: "female"}, wantMsg: "enter your birthdate"},
		{name: "missing gender", in: ProfileInput{Birthdate: "1990-01-01"}, wantMsg: "select your gender"},
		{name: "unknown gender", in: ProfileInput{Birthdate: "1990-01-01", Gender: "x"}, wantMsg: "gender must be"},
		{name: "bad date", in: ProfileInput{Birthdate: "01/01/1990", Gender: "male"}, wantMsg: "YYYY-MM-DD"},
		{name: "future", in: ProfileInput{Birthdate: "2030-01-01", Gender: "male"}, wantMsg: "future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(ctx, "u-1", "", tt.in)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestService_UpdateProfile_MergesExisting(t *testing.T) {
	repo := newTestRepo()
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.byID["u-1"] = User{ID: "u-1", Email: "a@b.c", Gender: GenderUnspecified, CreatedAt: created}
	svc := newTestService(repo)

	u, err := svc.UpdateProfile(context.Background(), "u-1", "ignored@b.c", ProfileInput{Birthdate: "1990-06-16", Gender: "Female"})
	require.NoError(t, err)

	assert.Equal(t, "a@b.c", u.Email)
	assert.Equal(t, created, u.CreatedAt)
	assert.Equal(t, GenderFemale, u.Gender)
	require.NotNil(t, u.Birthdate)
	assert.Equal(t, 33, *u.AgeAt(svc.Now()))
	assert.Equal(t, u, repo.byID["u-1"])
}

func TestService_UpdateProfile_CreatesWhenMissing(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	u, err := svc.UpdateProfile(context.Background(), "u-9", "n@b.c", ProfileInput{Birthdate: "2000-01-01", Gender: "male"})
	require.NoError(t, err)
	assert.Equal(t, "n@b.c", u.Email)
	assert.Contains(t, repo.byID, "u-9")
}

func TestService_UpdateProfile_StoreFailure(t *testing.T) {
	repo := newTestRepo()
	repo.failErr = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.UpdateProfile(context.Background(), "u-1", "", ProfileInput{Birthdate: "2000-01-01", Gender: "male"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestService_Current_CachesInSession(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)
	sess := &session.Session{Token: "t", UserID: "u-1", Email: "a@b.c"}

	u, err := svc.Current(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, GenderUnspecified, u.Gender)
	gets := repo.gets

	_, err = svc.Current(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, gets, repo.gets, "second call must be served from the session cache")

	updated, err := svc.UpdateProfile(context.Background(), "u-1", "a@b.c", ProfileInput{Birthdate: "1990-01-01", Gender: "male"})
	require.NoError(t, err)
	Remember(sess, updated)

	cached, err := svc.Current(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, GenderMale, cached.Gender)
	require.NotNil(t, cached.Birthdate)
}
