package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"foodbridge-backend/entities"
)

func Migrate(db *gorm.DB) error {
	// Setup PostgreSQL extensions for geographical calculations
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"earthdistance\" CASCADE;")
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"cube\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Fatalf("Error migrating food item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PickupRequest{}); err != nil {
		log.Fatalf("Error migrating pickup request database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.VerificationRequest{}); err != nil {
		log.Fatalf("Error migrating verification request database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
