package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sanavia/clinica/internal/config"
	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/internal/domain/history"
	"github.com/sanavia/clinica/internal/domain/patient"
	"github.com/sanavia/clinica/internal/domain/trace"
	"github.com/sanavia/clinica/internal/domain/vitals"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:          true,
		DisableAutomaticPing: false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	models := []any{
		&domain.User{},
		&patient.Patient{},
		&vitals.Record{},
		&trace.Entry{},
		&history.PatientSnapshot{},
		&history.VitalsSnapshot{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Both traceability readers order by fecha_hora DESC.
		{
			name:  "idx_trazabilidad_entidad_fecha",
			query: `CREATE INDEX IF NOT EXISTS idx_trazabilidad_entidad_fecha ON trazabilidad (entidad_id, fecha_hora DESC)`,
		},
		{
			name:  "idx_historial_paciente_fecha",
			query: `CREATE INDEX IF NOT EXISTS idx_historial_paciente_fecha ON historial_paciente (id_paciente, created_at DESC)`,
		},
		{
			name:  "idx_registros_paciente",
			query: `CREATE INDEX IF NOT EXISTS idx_registros_paciente ON registros_paciente (id_paciente, record_date)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("creating index %s: %w", idx.name, err)
		}
	}

	return nil
}
