package database

import (
	"fmt"

	"github.com/MarcJHerz/hoodfy-payments-service/config"
	"github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/entities"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Community{},
		&entities.CommunityMember{},
		&entities.Subscription{},
		&entities.PayoutRecord{},
		&entities.AllyRelation{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}
