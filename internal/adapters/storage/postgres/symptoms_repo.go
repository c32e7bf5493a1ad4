package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"symptom-tracker/internal/domain/symptoms"
)

type SymptomsRepo struct {
	db *sql.DB
}

func NewSymptomsRepo(db *sql.DB) *SymptomsRepo {
	return &SymptomsRepo{db: db}
}

const symptomColumns = `id, owner_user_id, disease_id, day, time_of_day, pain_level, medication_taken, details, created_at, updated_at`

func (r *SymptomsRepo) Create(ctx context.Context, rec symptoms.Record) error {
	day, err := parseDay(rec.Date)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO symptom_records (`+symptomColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		rec.ID,
		rec.OwnerUserID,
		rec.DiseaseID,
		day,
		toNullString(rec.TimeString()),
		rec.PainLevel,
		rec.MedicationTaken,
		rec.Details,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// Update no toca disease_id ni day: quedan fijos al crear.
func (r *SymptomsRepo) Update(ctx context.Context, rec symptoms.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE symptom_records
		SET time_of_day = $2, pain_level = $3, medication_taken = $4, details = $5, updated_at = $6
		WHERE id = $1
	`,
		rec.ID,
		toNullString(rec.TimeString()),
		rec.PainLevel,
		rec.MedicationTaken,
		rec.Details,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOne(res, symptoms.ErrNotFound)
}

func (r *SymptomsRepo) GetByID(ctx context.Context, id string) (symptoms.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return symptoms.Record{}, symptoms.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+symptomColumns+` FROM symptom_records WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return symptoms.Record{}, symptoms.ErrNotFound
		}
		return symptoms.Record{}, err
	}
	return rec, nil
}

func (r *SymptomsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]symptoms.Record, error) {
	return r.query(ctx, `
		SELECT `+symptomColumns+`
		FROM symptom_records
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
}

func (r *SymptomsRepo) ListByOwnerAndDate(ctx context.Context, ownerUserID, date string) ([]symptoms.Record, error) {
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, `
		SELECT `+symptomColumns+`
		FROM symptom_records
		WHERE owner_user_id = $1 AND day = $2
		ORDER BY created_at ASC, id ASC
	`, ownerUserID, day)
}

func (r *SymptomsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM symptom_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, symptoms.ErrNotFound)
}

func (r *SymptomsRepo) query(ctx context.Context, q string, args ...any) ([]symptoms.Record, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]symptoms.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (symptoms.Record, error) {
	var rec symptoms.Record
	var day time.Time
	var tod sql.NullString
	if err := s.Scan(
		&rec.ID,
		&rec.OwnerUserID,
		&rec.DiseaseID,
		&day,
		&tod,
		&rec.PainLevel,
		&rec.MedicationTaken,
		&rec.Details,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return symptoms.Record{}, err
	}

	rec.Date = day.Format(symptoms.DateLayout)
	if tod.Valid && tod.String != "" {
		t, err := symptoms.ParseTimeOfDay(tod.String)
		if err != nil {
			return symptoms.Record{}, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		rec.Time = &t
	}
	return rec, nil
}

func parseDay(date string) (time.Time, error) {
	d, err := time.Parse(symptoms.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", symptoms.ErrInvalidInput)
	}
	return d, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
