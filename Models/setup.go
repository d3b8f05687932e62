package Models

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	connection, err := gorm.Open(sqlite.Open("database.db"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Base models without dependencies
	DB.AutoMigrate(
		&Organization{},
		&User{},
		&Location{},
	)

	// 2. Templates reference organizations and agents
	DB.AutoMigrate(
		&PlanningTemplate{},
		&CleaningTemplate{},
	)

	// 3. Tasks depend on everything above
	DB.AutoMigrate(&Task{})
}
