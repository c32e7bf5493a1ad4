package symptoms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"symptom-tracker/internal/domain/diseases"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("symptom record not found")
	ErrForbidden    = errors.New("forbidden")
)

// DiseaseOwners expone el dueño de una enfermedad.
// Lo implementa diseases.Service (OwnerOf); una enfermedad inexistente
// llega como diseases.ErrNotFound.
type DiseaseOwners interface {
	OwnerOf(ctx context.Context, diseaseID string) (string, error)
}

type Service struct {
	repo     Repository
	diseases DiseaseOwners
	now      func() time.Time
}

func NewService(repo Repository, diseases DiseaseOwners) *Service {
	return &Service{
		repo:     repo,
		diseases: diseases,
		now:      time.Now,
	}
}

type CreateInput struct {
	DiseaseID       string
	Date            string
	Time            string // "AM 09:30" o vacío
	PainLevel       int
	MedicationTaken bool
	Details         string
}

// UpdateInput no trae DiseaseID editable: la enfermedad queda fija al crear.
// Si viene DiseaseID y no coincide, se rechaza.
type UpdateInput struct {
	DiseaseID       string
	Time            string
	PainLevel       int
	MedicationTaken bool
	Details         string
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func validatePain(level int) error {
	if level < MinPainLevel || level > MaxPainLevel {
		return invalid(fmt.Sprintf("pain_level must be between %d and %d", MinPainLevel, MaxPainLevel))
	}
	return nil
}

func validateDetails(details string) error {
	if utf8.RuneCountInString(details) > MaxDetailsLength {
		return invalid(fmt.Sprintf("details must be at most %d characters", MaxDetailsLength))
	}
	return nil
}

// ValidateDate exige YYYY-MM-DD real (no 2024-02-30).
func ValidateDate(field, date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return invalid(field + " must be YYYY-MM-DD")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Record, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Record{}, ErrInvalidInput
	}
	diseaseID := strings.TrimSpace(in.DiseaseID)
	if diseaseID == "" {
		return Record{}, invalid("select a disease")
	}
	date := strings.TrimSpace(in.Date)
	if err := ValidateDate("date", date); err != nil {
		return Record{}, err
	}
	if err := validatePain(in.PainLevel); err != nil {
		return Record{}, err
	}
	if err := validateDetails(in.Details); err != nil {
		return Record{}, err
	}
	tod, err := parseOptionalTime(in.Time)
	if err != nil {
		return Record{}, invalid(err.Error())
	}

	if err := s.checkDisease(ctx, ownerUserID, diseaseID); err != nil {
		return Record{}, err
	}

	now := s.now()
	r := Record{
		ID:              uuid.NewString(),
		OwnerUserID:     ownerUserID,
		DiseaseID:       diseaseID,
		Date:            date,
		Time:            tod,
		PainLevel:       in.PainLevel,
		MedicationTaken: in.MedicationTaken,
		Details:         strings.TrimSpace(in.Details),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) checkDisease(ctx context.Context, ownerUserID, diseaseID string) error {
	if s.diseases == nil {
		return nil
	}
	owner, err := s.diseases.OwnerOf(ctx, diseaseID)
	if errors.Is(err, diseases.ErrNotFound) {
		return invalid("disease not found")
	}
	if err != nil {
		return fmt.Errorf("load disease: %w", err)
	}
	if owner != ownerUserID {
		return ErrForbidden
	}
	return nil
}

// GetForOwner devuelve ErrForbidden si el registro es de otro usuario.
func (s *Service) GetForOwner(ctx context.Context, id, ownerUserID string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if r.OwnerUserID != ownerUserID {
		return Record{}, ErrForbidden
	}
	return r, nil
}

func (s *Service) ListByDate(ctx context.Context, ownerUserID, date string) ([]Record, error) {
	date = strings.TrimSpace(date)
	if err := ValidateDate("date", date); err != nil {
		return nil, err
	}
	return s.repo.ListByOwnerAndDate(ctx, ownerUserID, date)
}

// ListByRange trae todos los registros del usuario y filtra en memoria.
// Es un compromiso: el volumen por usuario es de escala "diario", no telemetría.
// Para más volumen habría que mover el rango al repositorio (índice compuesto).
func (s *Service) ListByRange(ctx context.Context, ownerUserID string, q RangeQuery) ([]Record, error) {
	q.Start = strings.TrimSpace(q.Start)
	q.End = strings.TrimSpace(q.End)
	q.DiseaseID = strings.TrimSpace(q.DiseaseID)

	if err := ValidateDate("start", q.Start); err != nil {
		return nil, err
	}
	if err := ValidateDate("end", q.End); err != nil {
		return nil, err
	}
	if q.Start > q.End {
		return nil, invalid("start must not be after end")
	}

	all, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return FilterRange(all, q), nil
}

// FilterRange aplica start <= date <= end (+ disease opcional) y ordena por
// fecha descendente. Registros con la misma fecha conservan el orden de entrada.
func FilterRange(records []Record, q RangeQuery) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Date < q.Start || r.Date > q.End {
			continue
		}
		if q.DiseaseID != "" && r.DiseaseID != q.DiseaseID {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// MonthBounds devuelve el primer y último día del mes en ISO.
func MonthBounds(year int, month time.Month) (string, string) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}

func (s *Service) ListByMonth(ctx context.Context, ownerUserID string, year int, month time.Month) (MonthView, error) {
	if year < 1 || year > 9999 || month < time.January || month > time.December {
		return MonthView{}, invalid("year/month out of range")
	}
	start, end := MonthBounds(year, month)

	records, err := s.ListByRange(ctx, ownerUserID, RangeQuery{Start: start, End: end})
	if err != nil {
		return MonthView{}, err
	}

	return MonthView{
		Year:    year,
		Month:   month,
		Start:   start,
		End:     end,
		Records: records,
		Days:    GroupByDay(records),
	}, nil
}

// GroupByDay arma los marcadores del calendario: por día (asc), cuántos
// registros de cada enfermedad, en el orden en que aparecen.
func GroupByDay(records []Record) []DayMarkers {
	idx := map[string]int{}
	out := make([]DayMarkers, 0)

	for _, r := range records {
		i, ok := idx[r.Date]
		if !ok {
			i = len(out)
			idx[r.Date] = i
			out = append(out, DayMarkers{Date: r.Date})
		}

		day := &out[i]
		found := false
		for k := range day.Diseases {
			if day.Diseases[k].DiseaseID == r.DiseaseID {
				day.Diseases[k].Count++
				found = true
				break
			}
		}
		if !found {
			day.Diseases = append(day.Diseases, DiseaseCount{DiseaseID: r.DiseaseID, Count: 1})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Record, error) {
	current, err := s.GetForOwner(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}

	if d := strings.TrimSpace(in.DiseaseID); d != "" && d != current.DiseaseID {
		return Record{}, invalid("disease cannot be changed after creation")
	}
	if err := validatePain(in.PainLevel); err != nil {
		return Record{}, err
	}
	if err := validateDetails(in.Details); err != nil {
		return Record{}, err
	}
	tod, err := parseOptionalTime(in.Time)
	if err != nil {
		return Record{}, invalid(err.Error())
	}

	current.PainLevel = in.PainLevel
	current.MedicationTaken = in.MedicationTaken
	current.Details = strings.TrimSpace(in.Details)
	current.Time = tod
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Record{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if _, err := s.GetForOwner(ctx, id, ownerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
