package database

import (
	"log"
	"os"

	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/domain/widget"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}

// Migrate is separated from InitDB so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shops.Shop{},
		&plans.Plan{},
		&billing.Subscription{},
		&billing.Payment{},
		&billing.CartAbandonmentLog{},
		&widget.WidgetSettings{},
	)
}
