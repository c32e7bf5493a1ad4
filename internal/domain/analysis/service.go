package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/stats"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/platform/logger"
	"symptom-tracker/internal/ports/llm"
)

const DefaultMaxTokens = 2000

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoSymptoms       = errors.New("no symptom data provided")
	ErrGeneratorMissing = errors.New("text generator not configured")
)

// RecordSource lo implementa symptoms.Service.
type RecordSource interface {
	ListByRange(ctx context.Context, ownerUserID string, q symptoms.RangeQuery) ([]symptoms.Record, error)
}

// DiseaseSource lo implementa diseases.Service.
type DiseaseSource interface {
	GetForOwner(ctx context.Context, id, ownerUserID string) (diseases.Disease, error)
}

type AIStatus string

const (
	AIStatusOK      AIStatus = "ok"
	AIStatusError   AIStatus = "error"
	AIStatusSkipped AIStatus = "skipped"
)

// AIResult es la parte narrativa; un fallo acá no invalida el resto del análisis.
type AIResult struct {
	Status     AIStatus
	Sections   []Section
	Raw        string
	WellFormed bool
	Error      string
}

type Request struct {
	DiseaseID string
	Period    PeriodKind
	Start     string
	End       string
}

type Result struct {
	Disease    diseases.Disease
	PeriodKind PeriodKind
	Period     stats.Period
	Summary    stats.Summary
	Charts     stats.Charts
	Records    []symptoms.Record
	AI         AIResult
}

type Service struct {
	records   RecordSource
	diseases  DiseaseSource
	gen       llm.Generator
	tracker   *Tracker
	maxTokens int
	log       logger.Logger
	onOutcome func(AIStatus)
	now       func() time.Time
}

type Option func(*Service)

func WithMaxTokens(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTokens = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithTracker(t *Tracker) Option {
	return func(s *Service) {
		if t != nil {
			s.tracker = t
		}
	}
}

// WithOutcomeHook recibe el estado IA de cada análisis (métricas).
func WithOutcomeHook(fn func(AIStatus)) Option {
	return func(s *Service) { s.onOutcome = fn }
}

func NewService(records RecordSource, diseases DiseaseSource, gen llm.Generator, opts ...Option) *Service {
	s := &Service{
		records:   records,
		diseases:  diseases,
		gen:       gen,
		tracker:   NewTracker(),
		maxTokens: DefaultMaxTokens,
		log:       logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run: registros del rango -> estadísticas + gráficos -> (si hay registros)
// prompt + una llamada al generador.
func (s *Service) Run(ctx context.Context, userID string, patient Patient, req Request) (Result, error) {
	diseaseID := strings.TrimSpace(req.DiseaseID)
	if diseaseID == "" {
		return Result{}, fmt.Errorf("%w: select a disease", ErrInvalidInput)
	}

	period, err := ResolvePeriod(req.Period, req.Start, req.End, s.now())
	if err != nil {
		return Result{}, err
	}

	disease, err := s.diseases.GetForOwner(ctx, diseaseID, userID)
	if err != nil {
		return Result{}, err
	}

	records, err := s.records.ListByRange(ctx, userID, symptoms.RangeQuery{
		Start:     period.Start,
		End:       period.End,
		DiseaseID: diseaseID,
	})
	if err != nil {
		return Result{}, err
	}

	kind := req.Period
	if kind == "" {
		kind = PeriodOneMonth
	}

	res := Result{
		Disease:    disease,
		PeriodKind: kind,
		Period:     period,
		Summary:    stats.Summarize(records, period),
		Charts:     stats.BuildCharts(records),
		Records:    records,
	}

	if len(records) == 0 {
		res.AI = AIResult{Status: AIStatusSkipped, Sections: []Section{}}
	} else {
		prompt := BuildPrompt(PromptInput{
			Patient: patient,
			Disease: DiseaseInfo{Name: disease.Name, Medication: disease.Medication},
			Period:  period,
			Summary: res.Summary,
			Records: records,
		})
		res.AI = s.narrate(ctx, userID, prompt)
	}

	s.log.Info("analysis finished", map[string]any{
		"user_id":    userID,
		"disease_id": diseaseID,
		"start":      period.Start,
		"end":        period.End,
		"records":    len(records),
		"ai_status":  string(res.AI.Status),
	})
	if s.onOutcome != nil {
		s.onOutcome(res.AI.Status)
	}

	return res, nil
}

func (s *Service) narrate(ctx context.Context, key, prompt string) AIResult {
	if s.gen == nil {
		return AIResult{Status: AIStatusError, Sections: []Section{}, Error: ErrGeneratorMissing.Error()}
	}

	ctx, done := s.tracker.Start(ctx, key)
	defer done()

	raw, err := s.gen.Generate(ctx, prompt, s.maxTokens)
	if err != nil {
		if cause := context.Cause(ctx); errors.Is(cause, ErrSuperseded) {
			err = cause
		}
		s.log.Warn("ai analysis failed", map[string]any{"user_id": key, "err": err})
		return AIResult{
			Status:   AIStatusError,
			Sections: []Section{},
			Error:    "AI analysis failed: " + err.Error(),
		}
	}

	sections, wellFormed := SplitSections(raw)
	return AIResult{
		Status:     AIStatusOK,
		Sections:   sections,
		Raw:        raw,
		WellFormed: wellFormed,
	}
}

// ProxyInput es el cuerpo ya decodificado del proxy /api/analyze.
type ProxyInput struct {
	Patient   Patient
	Disease   DiseaseInfo
	Symptoms  []symptoms.Record
	Period    stats.Period
	TotalDays int
}

// Analyze es el proxy sin estado: calcula las estadísticas sobre los síntomas
// recibidos y devuelve el texto del generador tal cual.
func (s *Service) Analyze(ctx context.Context, in ProxyInput) (string, error) {
	if len(in.Symptoms) == 0 {
		return "", ErrNoSymptoms
	}
	if s.gen == nil {
		return "", ErrGeneratorMissing
	}

	summary := stats.Summarize(in.Symptoms, in.Period)
	if in.TotalDays > 0 {
		summary.TotalDays = in.TotalDays
	}

	prompt := BuildPrompt(PromptInput{
		Patient: in.Patient,
		Disease: in.Disease,
		Period:  in.Period,
		Summary: summary,
		Records: in.Symptoms,
	})

	return s.gen.Generate(ctx, prompt, s.maxTokens)
}
