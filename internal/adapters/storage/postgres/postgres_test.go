package postgres

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"
	"time"

	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/ports/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(Migrations(), "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	raw, err := fs.ReadFile(Migrations(), files[0])
	require.NoError(t, err)
	body := string(raw)
	assert.True(t, strings.HasPrefix(body, "-- +goose Up"))
	assert.Contains(t, body, "CREATE TABLE IF NOT EXISTS symptom_records")
	assert.Contains(t, body, "-- +goose Down")

	raw, err = fs.ReadFile(Migrations(), "00002_credentials.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "CREATE TABLE IF NOT EXISTS credentials")
}

// Corre contra una base real solo si TEST_DB_DSN está definido.
func TestRepos_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(dsn, Pool{})
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(ctx, db)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	owner := "u-" + uuid.NewString()

	ur := NewUsersRepo(db)
	bd := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ur.Upsert(ctx, users.User{ID: owner, Email: "a@b.com", Birthdate: &bd, Gender: users.GenderFemale, CreatedAt: now, UpdatedAt: now}))
	u, err := ur.GetByID(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "1990-05-17", u.Birthdate.Format(users.DateLayout))

	dr := NewDiseasesRepo(db)
	d := diseases.Disease{ID: uuid.NewString(), OwnerUserID: owner, Name: "Migraine", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, dr.Create(ctx, d))

	sr := NewSymptomsRepo(db)
	tod := symptoms.TimeOfDay{Period: symptoms.PeriodPM, Hour: 3, Minute: 5}
	rec := symptoms.Record{ID: uuid.NewString(), OwnerUserID: owner, DiseaseID: d.ID, Date: "2024-02-29", Time: &tod, PainLevel: 4, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, sr.Create(ctx, rec))

	day, err := sr.ListByOwnerAndDate(ctx, owner, "2024-02-29")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "PM 03:05", day[0].TimeString())

	// sin cascada
	require.NoError(t, dr.Delete(ctx, d.ID))
	_, err = sr.GetByID(ctx, rec.ID)
	require.NoError(t, err)

	require.NoError(t, sr.Delete(ctx, rec.ID))
	_, err = sr.GetByID(ctx, rec.ID)
	require.ErrorIs(t, err, symptoms.ErrNotFound)

	cr := NewCredentialsRepo(db)
	email := owner + "@example.com"
	cred := auth.Credential{UserID: owner, Email: email, PasswordHash: []byte("hash"), CreatedAt: now}
	require.NoError(t, cr.CreateCredential(ctx, cred))
	require.ErrorIs(t, cr.CreateCredential(ctx, cred), auth.ErrEmailExists)

	got, err := cr.CredentialByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, []byte("hash"), got.PasswordHash)

	_, err = cr.CredentialByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, auth.ErrCredentialNotFound)
}
