package diseases

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"symptom-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/diseases", func(dr chi.Router) {
		dr.Post("/", createDiseaseHandler(svc))
		dr.Get("/", listDiseasesHandler(svc))

		dr.Get("/{diseaseID}", getDiseaseHandler(svc))
		dr.Put("/{diseaseID}", updateDiseaseHandler(svc))
		dr.Delete("/{diseaseID}", deleteDiseaseHandler(svc))
	})
}

type diseaseRequest struct {
	Name       string `json:"name"`
	Medication string `json:"medication"`
}

type diseaseResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Medication string    `json:"medication"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createDiseaseHandler godoc
// @Summary Registrar enfermedad
// @Description Crea una enfermedad del usuario autenticado. `name` es obligatorio, `medication` opcional.
// @Tags diseases
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body diseaseRequest true "Datos de la enfermedad"
// @Success 201 {object} diseaseResponse
// @Failure 400 {string} string "invalid json / enter the disease name"
// @Failure 401 {string} string "unauthorized"
// @Router /diseases [post]
func createDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req diseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), claims.UserID, Input{Name: req.Name, Medication: req.Medication})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toDiseaseResponse(d))
	}
}

// listDiseasesHandler godoc
// @Summary Listar enfermedades
// @Description Lista las enfermedades del usuario (orden de creación).
// @Tags diseases
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} diseaseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /diseases [get]
func listDiseasesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]diseaseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDiseaseResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getDiseaseHandler godoc
// @Summary Obtener enfermedad
// @Tags diseases
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param diseaseID path string true "ID de la enfermedad"
// @Success 200 {object} diseaseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "disease not found"
// @Router /diseases/{diseaseID} [get]
func getDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.GetForOwner(r.Context(), chi.URLParam(r, "diseaseID"), claims.UserID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDiseaseResponse(d))
	}
}

// updateDiseaseHandler godoc
// @Summary Editar enfermedad
// @Tags diseases
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param diseaseID path string true "ID de la enfermedad"
// @Param payload body diseaseRequest true "Nombre y medicación"
// @Success 200 {object} diseaseResponse
// @Failure 400 {string} string "invalid json / enter the disease name"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "disease not found"
// @Router /diseases/{diseaseID} [put]
func updateDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req diseaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "diseaseID"), claims.UserID, Input{
			Name:       req.Name,
			Medication: req.Medication,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toDiseaseResponse(d))
	}
}

// deleteDiseaseHandler godoc
// @Summary Eliminar enfermedad
// @Description Borra la enfermedad. Los registros de síntomas asociados NO se borran.
// @Tags diseases
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param diseaseID path string true "ID de la enfermedad"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "disease not found"
// @Router /diseases/{diseaseID} [delete]
func deleteDiseaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "diseaseID"), claims.UserID); err != nil {
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
		http.Error(w, "disease not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toDiseaseResponse(d Disease) diseaseResponse {
	return diseaseResponse{
		ID:         d.ID,
		UserID:     d.OwnerUserID,
		Name:       d.Name,
		Medication: d.Medication,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
