package sqlite

import (
	"time"

	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/domain/users"
)

type userModel struct {
	ID        string  `gorm:"primaryKey"`
	Email     string  `gorm:"not null;default:''"`
	Birthdate *string `gorm:"size:10"` // YYYY-MM-DD
	Gender    string  `gorm:"not null;default:unspecified"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

func toUserModel(u users.User) userModel {
	m := userModel{
		ID:        u.ID,
		Email:     u.Email,
		Gender:    string(u.Gender),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Birthdate != nil {
		s := u.Birthdate.Format(users.DateLayout)
		m.Birthdate = &s
	}
	return m
}

func (m userModel) toDomain() (users.User, error) {
	u := users.User{
		ID:        m.ID,
		Email:     m.Email,
		Gender:    users.Gender(m.Gender),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Birthdate != nil && *m.Birthdate != "" {
		bd, err := time.Parse(users.DateLayout, *m.Birthdate)
		if err != nil {
			return users.User{}, err
		}
		u.Birthdate = &bd
	}
	return u, nil
}

type diseaseModel struct {
	ID          string `gorm:"primaryKey"`
	OwnerUserID string `gorm:"not null;index:idx_diseases_owner"`
	Name        string `gorm:"not null"`
	Medication  string `gorm:"not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (diseaseModel) TableName() string { return "diseases" }

func toDiseaseModel(d diseases.Disease) diseaseModel {
	return diseaseModel{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		Name:        d.Name,
		Medication:  d.Medication,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m diseaseModel) toDomain() diseases.Disease {
	return diseases.Disease{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Medication:  m.Medication,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// symptomRecordModel guarda el día como texto ISO (comparable) y la hora
// en el formato "AM 09:30".
type symptomRecordModel struct {
	ID              string  `gorm:"primaryKey"`
	OwnerUserID     string  `gorm:"not null;index:idx_symptoms_owner_day,priority:1"`
	DiseaseID       string  `gorm:"not null;index"`
	Day             string  `gorm:"not null;size:10;index:idx_symptoms_owner_day,priority:2"`
	TimeOfDay       *string `gorm:"size:8"`
	PainLevel       int     `gorm:"not null"`
	MedicationTaken bool    `gorm:"not null;default:false"`
	Details         string  `gorm:"not null;default:''"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (symptomRecordModel) TableName() string { return "symptom_records" }

func toSymptomModel(r symptoms.Record) symptomRecordModel {
	m := symptomRecordModel{
		ID:              r.ID,
		OwnerUserID:     r.OwnerUserID,
		DiseaseID:       r.DiseaseID,
		Day:             r.Date,
		PainLevel:       r.PainLevel,
		MedicationTaken: r.MedicationTaken,
		Details:         r.Details,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if s := r.TimeString(); s != "" {
		m.TimeOfDay = &s
	}
	return m
}

func (m symptomRecordModel) toDomain() (symptoms.Record, error) {
	r := symptoms.Record{
		ID:              m.ID,
		OwnerUserID:     m.OwnerUserID,
		DiseaseID:       m.DiseaseID,
		Date:            m.Day,
		PainLevel:       m.PainLevel,
		MedicationTaken: m.MedicationTaken,
		Details:         m.Details,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.TimeOfDay != nil && *m.TimeOfDay != "" {
		t, err := symptoms.ParseTimeOfDay(*m.TimeOfDay)
		if err != nil {
			return symptoms.Record{}, err
		}
		r.Time = &t
	}
	return r, nil
}

type credentialModel struct {
	Email        string `gorm:"primaryKey"`
	UserID       string `gorm:"not null;uniqueIndex"`
	PasswordHash []byte `gorm:"not null"`
	CreatedAt    time.Time
}

func (credentialModel) TableName() string { return "credentials" }
