package symptoms

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"symptom-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/symptoms", func(sr chi.Router) {
		sr.Post("/", createRecordHandler(svc))
		sr.Get("/", listRecordsHandler(svc))

		sr.Get("/{recordID}", getRecordHandler(svc))
		sr.Put("/{recordID}", updateRecordHandler(svc))
		sr.Delete("/{recordID}", deleteRecordHandler(svc))
	})
}

// createRecordRequest es el cuerpo para registrar un síntoma en un día del calendario.
type createRecordRequest struct {
	DiseaseID       string `json:"disease_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	Time            string `json:"time"` // "AM 09:30", opcional
	PainLevel       int    `json:"pain_level"`
	MedicationTaken bool   `json:"medication_taken"`
	Details         string `json:"details"`
}

// updateRecordRequest: disease_id es opcional y solo se acepta si no cambia.
type updateRecordRequest struct {
	DiseaseID       string `json:"disease_id"`
	Time            string `json:"time"`
	PainLevel       int    `json:"pain_level"`
	MedicationTaken bool   `json:"medication_taken"`
	Details         string `json:"details"`
}

type recordResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	DiseaseID       string    `json:"disease_id"`
	Date            string    `json:"date"`
	Time            string    `json:"time,omitempty"`
	PainLevel       int       `json:"pain_level"`
	MedicationTaken bool      `json:"medication_taken"`
	Details         string    `json:"details"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type diseaseCountResponse struct {
	DiseaseID string `json:"disease_id"`
	Count     int    `json:"count"`
}

type dayMarkersResponse struct {
	Date     string                 `json:"date"`
	Diseases []diseaseCountResponse `json:"diseases"`
}

type monthResponse struct {
	Year    int                  `json:"year"`
	Month   int                  `json:"month"`
	Start   string               `json:"start"`
	End     string               `json:"end"`
	Records []recordResponse     `json:"records"`
	Days    []dayMarkersResponse `json:"days"`
}

// createRecordHandler godoc
// @Summary Registrar síntoma
// @Description Crea un registro de síntoma para una enfermedad del usuario. La enfermedad es obligatoria, pain_level 1-10, details hasta 1000 caracteres, time opcional "AM 09:30".
// @Tags symptoms
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createRecordRequest true "Datos del registro"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /symptoms [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			DiseaseID:       req.DiseaseID,
			Date:            req.Date,
			Time:            req.Time,
			PainLevel:       req.PainLevel,
			MedicationTaken: req.MedicationTaken,
			Details:         req.Details,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de síntomas
// @Description Tres modos según query: `date` (panel del día), `year`+`month` (calendario con marcadores por enfermedad) o `start`+`end` (+`disease_id` opcional, orden por fecha desc).
// @Tags symptoms
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param date query string false "Día YYYY-MM-DD"
// @Param year query int false "Año (vista mensual)"
// @Param month query int false "Mes 1-12 (vista mensual)"
// @Param start query string false "Inicio del rango YYYY-MM-DD"
// @Param end query string false "Fin del rango YYYY-MM-DD"
// @Param disease_id query string false "Filtra el rango por enfermedad"
// @Success 200 {array} recordResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /symptoms [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()

		switch {
		case strings.TrimSpace(q.Get("date")) != "":
			items, err := svc.ListByDate(r.Context(), claims.UserID, q.Get("date"))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toRecordResponses(items))

		case q.Get("year") != "" || q.Get("month") != "":
			year, errY := strconv.Atoi(q.Get("year"))
			month, errM := strconv.Atoi(q.Get("month"))
			if errY != nil || errM != nil {
				http.Error(w, "year and month must be integers", http.StatusBadRequest)
				return
			}
			view, err := svc.ListByMonth(r.Context(), claims.UserID, year, time.Month(month))
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toMonthResponse(view))

		case q.Get("start") != "" || q.Get("end") != "":
			items, err := svc.ListByRange(r.Context(), claims.UserID, RangeQuery{
				Start:     q.Get("start"),
				End:       q.Get("end"),
				DiseaseID: q.Get("disease_id"),
			})
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toRecordResponses(items))

		default:
			http.Error(w, "one of date, year+month or start+end is required", http.StatusBadRequest)
		}
	}
}

// getRecordHandler godoc
// @Summary Obtener registro de síntoma
// @Tags symptoms
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "symptom record not found"
// @Router /symptoms/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := svc.GetForOwner(r.Context(), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary Editar registro de síntoma
// @Description Actualiza dolor, medicación, detalles y hora. La enfermedad no se puede cambiar.
// @Tags symptoms
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string true "ID del registro"
// @Param payload body updateRecordRequest true "Campos editables"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "symptom record not found"
// @Router /symptoms/{recordID} [put]
func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), claims.UserID, UpdateInput{
			DiseaseID:       req.DiseaseID,
			Time:            req.Time,
			PainLevel:       req.PainLevel,
			MedicationTaken: req.MedicationTaken,
			Details:         req.Details,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// deleteRecordHandler godoc
// @Summary Eliminar registro de síntoma
// @Tags symptoms
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string true "ID del registro"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "symptom record not found"
// @Router /symptoms/{recordID} [delete]
func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID"), claims.UserID); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "symptom record not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRecordResponse(r Record) recordResponse {
	return recordResponse{
		ID:              r.ID,
		UserID:          r.OwnerUserID,
		DiseaseID:       r.DiseaseID,
		Date:            r.Date,
		Time:            r.TimeString(),
		PainLevel:       r.PainLevel,
		MedicationTaken: r.MedicationTaken,
		Details:         r.Details,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toRecordResponses(items []Record) []recordResponse {
	out := make([]recordResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toRecordResponse(r))
	}
	return out
}

func toMonthResponse(v MonthView) monthResponse {
	days := make([]dayMarkersResponse, 0, len(v.Days))
	for _, d := range v.Days {
		counts := make([]diseaseCountResponse, 0, len(d.Diseases))
		for _, c := range d.Diseases {
			counts = append(counts, diseaseCountResponse{DiseaseID: c.DiseaseID, Count: c.Count})
		}
		days = append(days, dayMarkersResponse{Date: d.Date, Diseases: counts})
	}

	return monthResponse{
		Year:    v.Year,
		Month:   int(v.Month),
		Start:   v.Start,
		End:     v.End,
		Records: toRecordResponses(v.Records),
		Days:    days,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
