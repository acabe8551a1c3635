package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alertaya/safezone-backend/internal/config"
	"github.com/alertaya/safezone-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	// TranslateError so unique-index violations surface as
	// gorm.ErrDuplicatedKey; the one-response and one-interaction invariants
	// depend on catching that.
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for every model.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Affair{},
		&models.Report{},
		&models.Survey{},
		&models.Question{},
		&models.SurveyResponse{},
		&models.InteractionRecord{},
		&models.NewsPost{},
		&models.Block{},
		&models.SystemLog{},
	)
}

// SeedAffairs inserts the default incident categories when the table is empty.
func SeedAffairs(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Affair{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	affairs := make([]models.Affair, 0, len(models.DefaultAffairs))
	for _, name := range models.DefaultAffairs {
		affairs = append(affairs, models.Affair{ID: uuid.New(), Name: name})
	}
	if err := db.Create(&affairs).Error; err != nil {
		return err
	}
	slog.Info("seeded affair categories", "count", len(affairs))
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
