package postgres

import (
	"context"
	"database/sql"
	"errors"

	"symptom-tracker/internal/ports/auth"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type CredentialsRepo struct {
	db *sql.DB
}

func NewCredentialsRepo(db *sql.DB) *CredentialsRepo {
	return &CredentialsRepo{db: db}
}

func (r *CredentialsRepo) CreateCredential(ctx context.Context, c auth.Credential) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (email, user_id, password_hash, created_at)
		VALUES ($1,$2,$3,$4)
	`, c.Email, c.UserID, c.PasswordHash, c.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return auth.ErrEmailExists
	}
	return err
}

func (r *CredentialsRepo) CredentialByEmail(ctx context.Context, email string) (auth.Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, user_id, password_hash, created_at
		FROM credentials
		WHERE email = $1
	`, email)

	var c auth.Credential
	if err := row.Scan(&c.Email, &c.UserID, &c.PasswordHash, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Credential{}, auth.ErrCredentialNotFound
		}
		return auth.Credential{}, err
	}
	return c, nil
}
