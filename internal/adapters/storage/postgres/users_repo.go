package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"symptom-tracker/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, birthdate, gender, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	var u users.User
	var bd sql.NullTime
	var gender string
	if err := row.Scan(&u.ID, &u.Email, &bd, &gender, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	u.Gender = users.Gender(gender)
	if bd.Valid {
		// DATE llega como medianoche UTC
		t := time.Date(bd.Time.Year(), bd.Time.Month(), bd.Time.Day(), 0, 0, 0, 0, time.UTC)
		u.Birthdate = &t
	}
	return u, nil
}

// Upsert reemplaza el documento completo; el merge de campos lo hace el service.
func (r *UsersRepo) Upsert(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, birthdate, gender, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			birthdate = EXCLUDED.birthdate,
			gender = EXCLUDED.gender,
			updated_at = EXCLUDED.updated_at
	`,
		u.ID,
		u.Email,
		toNullDate(u.Birthdate),
		string(u.Gender),
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

// birthdate es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
