package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studiobook/config"
	"studiobook/models"
)

// DB is the shared database handle, initialized once at startup and
// injected into repositories from main.
var DB *gorm.DB

// InitDB connects to PostgreSQL and migrates the schema.
func InitDB() *gorm.DB {
	logLevel := gormlogger.Warn
	if !config.IsProduction() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.AutoMigrate(
		&models.Studio{},
		&models.StudioPackage{},
		&models.Service{},
		&models.Contact{},
		&models.DiscountCode{},
		&models.Reservation{},
		&models.ReservationItem{},
		&models.Order{},
		&models.Payment{},
		&models.OrderPayment{},
		&models.WebhookEvent{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	DB = db
	return db
}
