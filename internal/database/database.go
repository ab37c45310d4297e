package database

import (
	"fmt"
	"os"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.DriverProfile{},
		&models.Ride{},
		&models.Booking{},
		&models.Payment{},
		&models.PaymentMethod{},
		&models.Rating{},
		&models.Issue{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
