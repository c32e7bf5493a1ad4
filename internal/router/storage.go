package router

import (
	"context"
	"fmt"

	mem "symptom-tracker/internal/adapters/storage/memory"
	pg "symptom-tracker/internal/adapters/storage/postgres"
	lite "symptom-tracker/internal/adapters/storage/sqlite"
	"symptom-tracker/internal/config"
	"symptom-tracker/internal/domain/diseases"
	"symptom-tracker/internal/domain/symptoms"
	"symptom-tracker/internal/domain/users"
	"symptom-tracker/internal/platform/logger"
	"symptom-tracker/internal/ports/auth"
)

// Repositories agrupa los repos de un mismo backend.
type Repositories struct {
	Users    users.Repository
	Diseases diseases.Repository
	Symptoms symptoms.Repository

	// Credenciales del proveedor embebido (IDENTITY_PROVIDER=local).
	Credentials auth.CredentialStore
}

func MemoryRepositories() *Repositories {
	return &Repositories{
		Users:       mem.NewUserRepo(),
		Diseases:    mem.NewDiseaseRepo(),
		Symptoms:    mem.NewSymptomRepo(),
		Credentials: mem.NewCredentialRepo(),
	}
}

// OpenStorage abre el backend elegido por STORAGE_DRIVER. El close devuelto
// libera la conexión (no-op en memoria).
func OpenStorage(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (*Repositories, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory, "":
		return MemoryRepositories(), noop, nil

	case config.DriverPostgres:
		db, err := pg.Open(cfg.DSN, pg.Pool{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.AutoMigrate {
			applied, err := pg.Migrate(ctx, db)
			if err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			log.Info("migrations applied", map[string]any{"count": len(applied)})
		}
		return &Repositories{
			Users:       pg.NewUsersRepo(db),
			Diseases:    pg.NewDiseasesRepo(db),
			Symptoms:    pg.NewSymptomsRepo(db),
			Credentials: pg.NewCredentialsRepo(db),
		}, db.Close, nil

	case config.DriverSQLite:
		db, err := lite.Open(cfg.SQLitePath, log.With(map[string]any{"component": "sqlite"}))
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := lite.SQLDB(db)
		if err != nil {
			return nil, nil, err
		}
		return &Repositories{
			Users:       lite.NewUsersRepo(db),
			Diseases:    lite.NewDiseasesRepo(db),
			Symptoms:    lite.NewSymptomsRepo(db),
			Credentials: lite.NewCredentialsRepo(db),
		}, sqlDB.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
