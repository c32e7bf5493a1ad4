package sqlite

import (
	"context"
	"errors"

	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/ports/auth"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ---- users ----

type UsersRepo struct {
	db *gorm.DB
}

func NewUsersRepo(db *gorm.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return m.toDomain()
}

func (r *UsersRepo) Upsert(ctx context.Context, u users.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "birthdate", "gender", "updated_at"}),
	}).Create(&m).Error
}

// ---- diseases ----

type DiseasesRepo struct {
	db *gorm.DB
}

func NewDiseasesRepo(db *gorm.DB) *DiseasesRepo {
	return &DiseasesRepo{db: db}
}

func (r *DiseasesRepo) Create(ctx context.Context, d diseases.Disease) error {
	m := toDiseaseModel(d)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *DiseasesRepo) GetByID(ctx context.Context, id string) (diseases.Disease, error) {
	var m diseaseModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return diseases.Disease{}, diseases.ErrNotFound
		}
		return diseases.Disease{}, err
	}
	return m.toDomain(), nil
}

func (r *DiseasesRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]diseases.Disease, error) {
	var rows []diseaseModel
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]diseases.Disease, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *DiseasesRepo) Update(ctx context.Context, d diseases.Disease) error {
	res := r.db.WithContext(ctx).Model(&diseaseModel{}).Where("id = ?", d.ID).Updates(map[string]any{
		"name":       d.Name,
		"medication": d.Medication,
		"updated_at": d.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return diseases.ErrNotFound
	}
	return nil
}

func (r *DiseasesRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&diseaseModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return diseases.ErrNotFound
	}
	return nil
}

// ---- symptom records ----

type SymptomsRepo struct {
	db *gorm.DB
}

func NewSymptomsRepo(db *gorm.DB) *SymptomsRepo {
	return &SymptomsRepo{db: db}
}

func (r *SymptomsRepo) Create(ctx context.Context, rec symptoms.Record) error {
	m := toSymptomModel(rec)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *SymptomsRepo) GetByID(ctx context.Context, id string) (symptoms.Record, error) {
	var m symptomRecordModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return symptoms.Record{}, symptoms.ErrNotFound
		}
		return symptoms.Record{}, err
	}
	return m.toDomain()
}

func (r *SymptomsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]symptoms.Record, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID))
}

func (r *SymptomsRepo) ListByOwnerAndDate(ctx context.Context, ownerUserID, date string) ([]symptoms.Record, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_user_id = ? AND day = ?", ownerUserID, date))
}

func (r *SymptomsRepo) find(q *gorm.DB) ([]symptoms.Record, error) {
	var rows []symptomRecordModel
	if err := q.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]symptoms.Record, 0, len(rows))
	for _, m := range rows {
		rec, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Update deja fijos disease_id y day.
func (r *SymptomsRepo) Update(ctx context.Context, rec symptoms.Record) error {
	m := toSymptomModel(rec)
	res := r.db.WithContext(ctx).Model(&symptomRecordModel{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"time_of_day":      m.TimeOfDay,
		"pain_level":       m.PainLevel,
		"medication_taken": m.MedicationTaken,
		"details":          m.Details,
		"updated_at":       m.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return symptoms.ErrNotFound
	}
	return nil
}

func (r *SymptomsRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&symptomRecordModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return symptoms.ErrNotFound
	}
	return nil
}

// ---- credentials ----

type CredentialsRepo struct {
	db *gorm.DB
}

func NewCredentialsRepo(db *gorm.DB) *CredentialsRepo {
	return &CredentialsRepo{db: db}
}

func (r *CredentialsRepo) CreateCredential(ctx context.Context, c auth.Credential) error {
	m := credentialModel{
		Email:        c.Email,
		UserID:       c.UserID,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return auth.ErrEmailExists
	}
	return nil
}

func (r *CredentialsRepo) CredentialByEmail(ctx context.Context, email string) (auth.Credential, error) {
	var m credentialModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Credential{}, auth.ErrCredentialNotFound
		}
		return auth.Credential{}, err
	}
	return auth.Credential{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}, nil
}
