package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"symptom-tracker/internal/platform/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const memoryDSN = ":memory:"

// gormWriter manda los avisos de gorm (consultas lentas, errores) al logger del servicio.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn("gorm", map[string]any{"detail": strings.TrimSpace(fmt.Sprintf(format, args...))})
}

// Open abre (o crea) la base embebida y migra el esquema con AutoMigrate.
// path=":memory:" abre una base volátil de una sola conexión (tests).
func Open(path string, log logger.Logger) (*gorm.DB, error) {
	if log == nil {
		log = logger.Nop()
	}

	dsn := memoryDSN
	if strings.TrimSpace(path) != "" && path != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(
			gormWriter{log: log},
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if dsn == memoryDSN {
		// cada conexión nueva sería otra base vacía
		sqlDB, err := SQLDB(db)
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&userModel{}, &diseaseModel{}, &symptomRecordModel{}, &credentialModel{}); err != nil {
		closePool(db)
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

// SQLDB devuelve el *sql.DB detrás de gorm. Si no hay uno, cierra el pool
// abierto para no dejar la conexión colgada.
func SQLDB(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		closePool(db)
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	return sqlDB, nil
}

func closePool(db *gorm.DB) {
	if db == nil || db.Config == nil || db.ConnPool == nil {
		return
	}
	if c, ok := db.ConnPool.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
