package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/middleware"
	"symptom-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes monta signup/signin, que no exigen sesión.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/signup", signUpHandler(svc))
	r.Post("/auth/signin", signInHandler(svc))
}

// RegisterRoutes monta signout dentro del grupo autenticado.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/signout", signOutHandler(svc))
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountUser struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Birthdate *string      `json:"birthdate"`
	Gender    users.Gender `json:"gender"`
}

type sessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
	User      accountUser `json:"user"`
}

// signUpHandler godoc
// @Summary Crear cuenta
// @Description Registra email y contraseña en el proveedor de identidad, crea el perfil vacío y abre sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signUpRequest true "Email, contraseña y confirmación"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "enter your email / password must be at least 6 characters / passwords do not match"
// @Failure 409 {string} string "email already registered"
// @Failure 503 {string} string "identity provider not configured"
// @Router /auth/signup [post]
func signUpHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.SignUp(r.Context(), SignUpInput{
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toSessionResponse(res))
	}
}

// signInHandler godoc
// @Summary Iniciar sesión
// @Description Autentica contra el proveedor de identidad, carga (o crea) el perfil y abre sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signInRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "enter your email"
// @Failure 401 {string} string "invalid email or password"
// @Failure 503 {string} string "identity provider not configured"
// @Router /auth/signin [post]
func signInHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSessionResponse(res))
	}
}

// signOutHandler godoc
// @Summary Cerrar sesión
// @Description Termina la sesión actual; el token deja de aceptarse.
// @Tags auth
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 204 "No Content"
// @Failure 401 {string} string "unauthorized"
// @Router /auth/signout [post]
func signOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		svc.SignOut(sess)
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "), http.StatusBadRequest)
	case errors.Is(err, auth.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, auth.ErrEmailExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toSessionResponse(res Result) sessionResponse {
	var bd *string
	if res.User.Birthdate != nil {
		s := res.User.Birthdate.Format(users.DateLayout)
		bd = &s
	}
	var exp *time.Time
	if !res.ExpiresAt.IsZero() {
		e := res.ExpiresAt.UTC()
		exp = &e
	}
	return sessionResponse{
		Token:     res.Token,
		ExpiresAt: exp,
		User: accountUser{
			ID:        res.User.ID,
			Email:     res.User.Email,
			Birthdate: bd,
			Gender:    res.User.Gender,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
