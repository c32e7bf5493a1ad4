package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"symptom-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", getMeHandler(svc))
	r.Put("/me/profile", updateProfileHandler(svc))
}

type profileRequest struct {
	Birthdate string `json:"birthdate"` // YYYY-MM-DD
	Gender    string `json:"gender" enums:"male,female,unspecified"`
}

type userResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Birthdate *string `json:"birthdate"`
	Gender    Gender  `json:"gender"`
	Age       *int    `json:"age"`
}

// getMeHandler godoc
// @Summary Perfil del usuario
// @Description Devuelve el perfil cacheado en la sesión (se carga del store la primera vez) con la edad calculada.
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} userResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Current(r.Context(), sess)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(svc, u))
	}
}

// updateProfileHandler godoc
// @Summary Guardar perfil
// @Description Guarda fecha de nacimiento y género (ambos obligatorios). Crea el documento si no existe. Un fallo inesperado del store responde un mensaje genérico de conexión.
// @Tags users
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body profileRequest true "Perfil"
// @Success 200 {object} userResponse
// @Failure 400 {string} string "enter your birthdate / select your gender"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "could not save profile, check your connection"
// @Router /me/profile [put]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), sess.UserID, sess.Email, ProfileInput{
			Birthdate: req.Birthdate,
			Gender:    req.Gender,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "), http.StatusBadRequest)
				return
			}
			http.Error(w, "could not save profile, check your connection", http.StatusInternalServerError)
			return
		}

		Remember(sess, u)
		writeJSON(w, http.StatusOK, toUserResponse(svc, u))
	}
}

func toUserResponse(svc *Service, u User) userResponse {
	var bd *string
	if u.Birthdate != nil {
		s := u.Birthdate.Format(DateLayout)
		bd = &s
	}
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Birthdate: bd,
		Gender:    u.Gender,
		Age:       u.AgeAt(svc.Now()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
