package utils

import (
	"fmt"

	"cfaprep/backend/config"
	"cfaprep/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for every model. Shared with the test
// setup, which runs it against sqlite instead of postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Chapter{},
		&models.Question{},
		&models.Answer{},
		&models.TopicProgress{},
		&models.Activity{},
		&models.PracticeSet{},
		&models.Payment{},
		&models.ErrorLog{},
	)
}
