package db

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/igabaycare/clinic-core/internal/config"
	"github.com/igabaycare/clinic-core/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	gormLogLevel := logger.Warn
	if cfg.Env == "development" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         NewGormLogger(log, gormLogLevel),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Patient{},
		&models.Appointment{},
		&models.Prescription{},
		&models.MedicationLine{},
		&models.MedicalHistoryEntry{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	db.Exec(`
        UPDATE appointments
        SET version = 1
        WHERE version IS NULL OR version = 0
    `)

	return db
}
