package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/stats"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxProxyBody = 1 << 20

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service) {
	r.Post("/analysis", runAnalysisHandler(svc, usersSvc))
}

// RegisterProxyRoutes monta el proxy sin sesión. Maneja todos los métodos
// porque responde OPTIONS y 405 por su cuenta.
func RegisterProxyRoutes(r chi.Router, svc *Service) {
	r.HandleFunc("/api/analyze", analyzeProxyHandler(svc))
}

type analysisRequest struct {
	DiseaseID string     `json:"disease_id"`
	Period    PeriodKind `json:"period" enums:"1month,3months,custom"`
	Start     string     `json:"start"` // YYYY-MM-DD, solo custom
	End       string     `json:"end"`   // YYYY-MM-DD, solo custom
}

type diseaseSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Medication string `json:"medication"`
}

type periodResponse struct {
	Kind      PeriodKind `json:"kind"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	TotalDays int        `json:"total_days"`
}

type monthCountResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type levelCountResponse struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

type summaryResponse struct {
	Count               int                  `json:"count"`
	AvgPainLevel        float64              `json:"avg_pain_level"`
	MedicationRate      float64              `json:"medication_rate"`
	MultiOccurrenceDays int                  `json:"multi_occurrence_days"`
	MonthlyCount        []monthCountResponse `json:"monthly_count"`
	MonthlyAvg          float64              `json:"monthly_avg"`
	MaxMonth            string               `json:"max_month"`
	MaxMonthCount       int                  `json:"max_month_count"`
	MinMonth            string               `json:"min_month"`
	MinMonthCount       int                  `json:"min_month_count"`
	PainDistribution    []levelCountResponse `json:"pain_distribution"`
	TotalDays           int                  `json:"total_days"`
	Message             string               `json:"message,omitempty"`
}

type weekdayResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type painPointResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	PainLevel int    `json:"pain_level"`
}

type medicationResponse struct {
	Taken    int `json:"taken"`
	NotTaken int `json:"not_taken"`
}

type chartsResponse struct {
	Weekday    []weekdayResponse   `json:"weekday"`
	Pain       []painPointResponse `json:"pain"`
	Medication medicationResponse  `json:"medication"`
}

type recordSummary struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time,omitempty"`
	PainLevel       int    `json:"pain_level"`
	MedicationTaken bool   `json:"medication_taken"`
	Details         string `json:"details"`
}

type sectionResponse struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title"`
	Body  string      `json:"body"`
}

type aiResponse struct {
	Status     AIStatus          `json:"status"`
	Sections   []sectionResponse `json:"sections"`
	Raw        string            `json:"raw,omitempty"`
	WellFormed bool              `json:"well_formed"`
	Error      string            `json:"error,omitempty"`
}

type analysisResponse struct {
	Disease diseaseSummary  `json:"disease"`
	Period  periodResponse  `json:"period"`
	Summary summaryResponse `json:"summary"`
	Charts  chartsResponse  `json:"charts"`
	Records []recordSummary `json:"records"`
	AI      aiResponse      `json:"ai"`
}

// runAnalysisHandler godoc
// @Summary Análisis de síntomas
// @Description Calcula estadísticas y series de gráficos del período para una enfermedad y, si hay registros, pide el análisis narrativo IA. Un fallo IA no corta la respuesta: queda en `ai.status=error`.
// @Tags analysis
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body analysisRequest true "Enfermedad y período (1month, 3months o custom con start/end)"
// @Success 200 {object} analysisResponse
// @Failure 400 {string} string "select a disease / fechas inválidas"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "disease not found"
// @Failure 500 {string} string "internal error"
// @Router /analysis [post]
func runAnalysisHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req analysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := usersSvc.Current(r.Context(), sess)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		res, err := svc.Run(r.Context(), sess.UserID, patientOf(u, usersSvc), Request{
			DiseaseID: req.DiseaseID,
			Period:    req.Period,
			Start:     req.Start,
			End:       req.End,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, symptoms.ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, diseases.ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.Is(err, diseases.ErrNotFound):
				http.Error(w, "disease not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnalysisResponse(res))
	}
}

func patientOf(u users.User, usersSvc *users.Service) Patient {
	gender := string(u.Gender)
	if u.Gender == users.GenderUnspecified {
		gender = ""
	}
	return Patient{Age: u.AgeAt(usersSvc.Now()), Gender: gender}
}

// ---- proxy /api/analyze ----

type proxyRequest struct {
	UserInfo struct {
		Age    *int   `json:"age"`
		Gender string `json:"gender"`
	} `json:"userInfo"`
	DiseaseInfo struct {
		DiseaseName string `json:"diseaseName"`
		Medication  string `json:"medication"`
	} `json:"diseaseInfo"`
	Symptoms []proxySymptom `json:"symptoms"`
	Period   struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		TotalDays int    `json:"totalDays"`
	} `json:"period"`
}

// proxySymptom es el registro tal como lo guarda el cliente (symptomTime).
// "time" se acepta como alias.
type proxySymptom struct {
	Date            string `json:"date"`
	SymptomTime     string `json:"symptomTime"`
	Time            string `json:"time"`
	PainLevel       int    `json:"painLevel"`
	MedicationTaken bool   `json:"medicationTaken"`
	Details         string `json:"details"`
}

type proxyResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

// analyzeProxyHandler godoc
// @Summary Proxy de análisis IA
// @Description Endpoint sin sesión: recibe usuario, enfermedad, síntomas y período, arma el prompt y devuelve el texto del modelo. OPTIONS responde CORS permisivo; otros métodos distintos de POST reciben 405.
// @Tags analysis
// @Accept json
// @Produce json
// @Param payload body proxyRequest true "userInfo, diseaseInfo, symptoms, period"
// @Success 200 {object} proxyResponse
// @Failure 400 {object} proxyResponse
// @Failure 405 {object} proxyResponse
// @Failure 500 {object} proxyResponse
// @Router /api/analyze [post]
func analyzeProxyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,OPTIONS,PATCH,DELETE,POST,PUT")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, proxyResponse{Error: "Method not allowed"})
			return
		}

		var req proxyRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProxyBody)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, proxyResponse{Error: "invalid json"})
			return
		}

		analysis, err := svc.Analyze(r.Context(), toProxyInput(req))
		if err != nil {
			if errors.Is(err, ErrNoSymptoms) {
				writeJSON(w, http.StatusBadRequest, proxyResponse{Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, proxyResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, proxyResponse{Success: true, Analysis: analysis})
	}
}

func toProxyInput(req proxyRequest) ProxyInput {
	records := make([]symptoms.Record, 0, len(req.Symptoms))
	for _, s := range req.Symptoms {
		rec := symptoms.Record{
			Date:            strings.TrimSpace(s.Date),
			PainLevel:       s.PainLevel,
			MedicationTaken: s.MedicationTaken,
			Details:         s.Details,
		}
		// hora ilegible = sin hora; el proxy no valida registros
		raw := s.SymptomTime
		if strings.TrimSpace(raw) == "" {
			raw = s.Time
		}
		if tod, err := symptoms.ParseTimeOfDay(raw); err == nil {
			rec.Time = &tod
		}
		records = append(records, rec)
	}

	return ProxyInput{
		Patient:  Patient{Age: req.UserInfo.Age, Gender: req.UserInfo.Gender},
		Disease:  DiseaseInfo{Name: req.DiseaseInfo.DiseaseName, Medication: req.DiseaseInfo.Medication},
		Symptoms: records,
		Period: stats.Period{
			Start: strings.TrimSpace(req.Period.StartDate),
			End:   strings.TrimSpace(req.Period.EndDate),
		},
		TotalDays: req.Period.TotalDays,
	}
}

func toAnalysisResponse(res Result) analysisResponse {
	s := res.Summary

	months := make([]monthCountResponse, 0, len(s.MonthlyCount))
	for _, m := range s.MonthlyCount {
		months = append(months, monthCountResponse{Month: m.Month, Count: m.Count})
	}
	levels := make([]levelCountResponse, 0, len(s.PainDistribution))
	for _, l := range s.PainDistribution {
		levels = append(levels, levelCountResponse{Level: l.Level, Count: l.Count})
	}

	weekday := make([]weekdayResponse, 0, len(res.Charts.Weekday))
	for _, b := range res.Charts.Weekday {
		weekday = append(weekday, weekdayResponse{Label: b.Label, Count: b.Count})
	}
	pain := make([]painPointResponse, 0, len(res.Charts.Pain))
	for _, p := range res.Charts.Pain {
		pain = append(pain, painPointResponse{Date: p.Date, Time: p.Time, PainLevel: p.PainLevel})
	}

	records := make([]recordSummary, 0, len(res.Records))
	for _, r := range res.Records {
		records = append(records, recordSummary{
			ID:              r.ID,
			Date:            r.Date,
			Time:            r.TimeString(),
			PainLevel:       r.PainLevel,
			MedicationTaken: r.MedicationTaken,
			Details:         r.Details,
		})
	}

	sections := make([]sectionResponse, 0, len(res.AI.Sections))
	for _, sec := range res.AI.Sections {
		sections = append(sections, sectionResponse{Kind: sec.Kind, Title: sec.Title, Body: sec.Body})
	}

	return analysisResponse{
		Disease: diseaseSummary{
			ID:         res.Disease.ID,
			Name:       res.Disease.Name,
			Medication: res.Disease.Medication,
		},
		Period: periodResponse{
			Kind:      res.PeriodKind,
			Start:     res.Period.Start,
			End:       res.Period.End,
			TotalDays: res.Period.TotalDays(),
		},
		Summary: summaryResponse{
			Count:               s.Count,
			AvgPainLevel:        s.AvgPainLevel,
			MedicationRate:      s.MedicationRate,
			MultiOccurrenceDays: s.MultiOccurrenceDays,
			MonthlyCount:        months,
			MonthlyAvg:          s.MonthlyAvg,
			MaxMonth:            s.MaxMonth,
			MaxMonthCount:       s.MaxMonthCount,
			MinMonth:            s.MinMonth,
			MinMonthCount:       s.MinMonthCount,
			PainDistribution:    levels,
			TotalDays:           s.TotalDays,
			Message:             s.Message,
		},
		Charts: chartsResponse{
			Weekday:    weekday,
			Pain:       pain,
			Medication: medicationResponse{Taken: res.Charts.Medication.Taken, NotTaken: res.Charts.Medication.NotTaken},
		},
		Records: records,
		AI: aiResponse{
			Status:     res.AI.Status,
			Sections:   sections,
			Raw:        res.AI.Raw,
			WellFormed: res.AI.WellFormed,
			Error:      res.AI.Error,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
