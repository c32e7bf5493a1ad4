package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"symptom-tracker/internal/domain/diseases"
)

type DiseasesRepo struct {
	db *sql.DB
}

func NewDiseasesRepo(db *sql.DB) *DiseasesRepo {
	return &DiseasesRepo{db: db}
}

func (r *DiseasesRepo) Create(ctx context.Context, d diseases.Disease) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diseases (id, owner_user_id, name, medication, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, d.ID, d.OwnerUserID, d.Name, d.Medication, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *DiseasesRepo) Update(ctx context.Context, d diseases.Disease) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE diseases
		SET name = $2, medication = $3, updated_at = $4
		WHERE id = $1
	`, d.ID, d.Name, d.Medication, d.UpdatedAt)
	if err != nil {
		return err
	}
	return expectOne(res, diseases.ErrNotFound)
}

func (r *DiseasesRepo) GetByID(ctx context.Context, id string) (diseases.Disease, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return diseases.Disease{}, diseases.ErrNotFound
	}

	var d diseases.Disease
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, name, medication, created_at, updated_at
		FROM diseases
		WHERE id = $1
	`, id).Scan(&d.ID, &d.OwnerUserID, &d.Name, &d.Medication, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return diseases.Disease{}, diseases.ErrNotFound
		}
		return diseases.Disease{}, err
	}
	return d, nil
}

func (r *DiseasesRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]diseases.Disease, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, medication, created_at, updated_at
		FROM diseases
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, strings.TrimSpace(ownerUserID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]diseases.Disease, 0)
	for rows.Next() {
		var d diseases.Disease
		if err := rows.Scan(&d.ID, &d.OwnerUserID, &d.Name, &d.Medication, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DiseasesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM diseases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, diseases.ErrNotFound)
}

func expectOne(res sql.Result, notFound error) error {
	n, _ := res.RowsAffected()
	if n == 0 {
		return notFound
	}
	return nil
}
