package main

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taxprep/config"
	"taxprep/database"
	"taxprep/models"
)

// Seeds a demo account for local development. Safe to run repeatedly.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	const demoEmail = "demo@taxprep.local"

	var existing models.User
	err := db.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		log.Printf("Demo user already exists (id %d), nothing to do", existing.ID)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check for existing demo user: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("demo-password-123"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := models.User{
		FirstName:    "Dana",
		LastName:     "Whitfield",
		Email:        demoEmail,
		Password:     string(hashedPassword),
		FilingStatus: models.FilingMarriedJoint,
		SSN:          "123-45-6789",
		Address: models.Address{
			Street: "18 Juniper Lane",
			City:   "Columbus",
			State:  "OH",
			Zip:    "43220",
		},
		FormCompletionStatus: models.FormNotStarted,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	dependents := []models.Dependent{
		{UserID: user.ID, Name: "Avery Whitfield", Relationship: "child", DateOfBirth: "2015-06-11", SSN: "987-65-4321"},
		{UserID: user.ID, Name: "Rowan Whitfield", Relationship: "child", DateOfBirth: "2018-02-27", SSN: "987-65-4322"},
	}
	if err := db.Create(&dependents).Error; err != nil {
		log.Fatalf("Failed to create demo dependents: %v", err)
	}

	log.Printf("Seeded demo user %s (id %d) with %d dependents", demoEmail, user.ID, len(dependents))
	log.Println("Login with demo-password-123")
}
