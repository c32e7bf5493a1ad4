package router

import (
	"net/http"

	"symptom-tracker/internal/config"
	"symptom-tracker/internal/domain/accounts"
	"symptom-tracker/internal/domain/analysis"
	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/middleware"
	"symptom-tracker/internal/platform/logger"
	"symptom-tracker/internal/platform/metrics"
	"symptom-tracker/internal/ports/auth"
	"symptom-tracker/internal/ports/llm"
	"symptom-tracker/internal/session"

	_ "symptom-tracker/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier    // puede ser nil (modo dev)
	Identity     auth.IdentityProvider // nil => signup/signin responden 503

	// Opcional: si no viene, repos in-memory.
	Repos *Repositories

	Generator llm.Generator // nil => el análisis IA queda en status=error
	MaxTokens int

	Sessions *session.Manager
	Logger   logger.Logger
	Metrics  *metrics.Metrics
	CORS     config.CORSConfig
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewManager(session.Config{})
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	repos := opts.Repos
	if repos == nil {
		repos = MemoryRepositories()
	}

	// Services por módulo
	usersSvc := users.NewService(repos.Users)
	diseasesSvc := diseases.NewService(repos.Diseases)
	symptomsSvc := symptoms.NewService(repos.Symptoms, diseasesSvc)
	accountsSvc := accounts.NewService(opts.Identity, usersSvc, sessions)
	analysisSvc := analysis.NewService(symptomsSvc, diseasesSvc, opts.Generator,
		analysis.WithMaxTokens(opts.MaxTokens),
		analysis.WithLogger(log.With(map[string]any{"component": "analysis"})),
		analysis.WithOutcomeHook(func(s analysis.AIStatus) { m.ObserveAnalysis(string(s)) }),
	)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(m.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// El proxy maneja su propio CORS y OPTIONS.
	analysis.RegisterProxyRoutes(r, analysisSvc)

	// API con sesión
	api := chi.NewRouter()
	api.Use(middleware.CORS(opts.CORS))
	api.Use(middleware.AuthContext(opts.AuthVerifier, sessions))
	api.Use(middleware.AccessLog(log))

	// Rutas por módulo
	accounts.RegisterPublicRoutes(api, accountsSvc)
	accounts.RegisterRoutes(api, accountsSvc)
	users.RegisterRoutes(api, usersSvc)
	diseases.RegisterRoutes(api, diseasesSvc)
	symptoms.RegisterRoutes(api, symptomsSvc)
	analysis.RegisterRoutes(api, analysisSvc, usersSvc)

	r.Mount("/", api)

	return r
}
