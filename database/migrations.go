package database

import (
	"log"

	"folio/models"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Admin{},
		&models.Settings{},
		&models.Project{},
		&models.Skill{},
		&models.Experience{},
		&models.Education{},
		&models.Certificate{},
		&models.BlogPost{},
		&models.ContactMessage{},
	)

	if err != nil {
		log.Printf("Error running migrations: %v", err)
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}
