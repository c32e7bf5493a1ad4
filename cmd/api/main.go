package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"symptom-tracker/internal/adapters/auth/identitytoolkit"
	"symptom-tracker/internal/adapters/auth/local"
	llmanthropic "symptom-tracker/internal/adapters/llm/anthropic"
	"symptom-tracker/internal/config"
	"symptom-tracker/internal/platform/logger"
	"symptom-tracker/internal/platform/metrics"
	"symptom-tracker/internal/ports/auth"
	"symptom-tracker/internal/ports/llm"
	"symptom-tracker/internal/router"
	"symptom-tracker/internal/session"
)

// @title Symptom Tracker API
// @version 1.0
// @description Registro diario de síntomas por enfermedad, calendario mensual y análisis con IA.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := router.OpenStorage(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Warn("storage close failed", map[string]any{"err": err})
		}
	}()

	identity, verifier, err := buildIdentity(cfg.Identity, repos.Credentials)
	if err != nil {
		return fmt.Errorf("identity: %w", err)
	}

	var gen llm.Generator
	if cfg.LLM.Enabled() {
		g, err := llmanthropic.NewGenerator(llmanthropic.Config{
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		})
		if err != nil {
			return fmt.Errorf("llm: %w", err)
		}
		gen = g
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, AI analysis disabled", nil)
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Identity:     identity,
		Repos:        repos,
		Generator:    gen,
		MaxTokens:    cfg.LLM.MaxTokens,
		Sessions: session.NewManager(session.Config{
			TTL:         cfg.Session.TTL,
			MaxSessions: cfg.Session.MaxSessions,
		}),
		Logger:  log,
		Metrics: metrics.New(),
		CORS:    cfg.CORS,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":     srv.Addr,
			"storage":  cfg.Storage.Driver,
			"identity": cfg.Identity.Provider,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildIdentity arma el proveedor según IDENTITY_PROVIDER.
// dev no tiene verifier: AuthContext acepta X-Debug-User-ID.
// local guarda las credenciales en el mismo backend que el resto de los datos.
func buildIdentity(cfg config.IdentityConfig, creds auth.CredentialStore) (auth.IdentityProvider, auth.AuthVerifier, error) {
	switch cfg.Provider {
	case config.ProviderDev, "":
		return nil, nil, nil

	case config.ProviderLocal:
		p, err := local.NewProvider(cfg.LocalSecret, cfg.LocalTokenTTL, creds)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil

	case config.ProviderIdentityToolkit:
		c, err := identitytoolkit.NewClient(identitytoolkit.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, identitytoolkit.NewVerifier(c), nil

	default:
		return nil, nil, fmt.Errorf("unknown identity provider %q", cfg.Provider)
	}
}
