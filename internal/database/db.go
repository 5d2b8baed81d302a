package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

func NewConnection(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DSN is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Location{},
		&models.Shop{},
		&models.Role{},
		&models.User{},
		&models.Profile{},
		&models.UserCountSnapshot{},
		&models.Jewellery{},
		&models.RFID{},
		&models.RFIDJewelleryMap{},
		&models.TrafficSource{},
		&models.NewUser{},
		&models.SalesDistribution{},
		&models.Project{},
		&models.ProjectTask{},
		&models.ActiveAuthor{},
		&models.Designation{},
		&models.UserActivity{},
	)
}
