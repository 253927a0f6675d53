package main

import (
	"fmt"
	"log"

	"github.com/ducnguyen/caretrack/internal/config"
	"github.com/ducnguyen/caretrack/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(mysql.Open(cfg.DB.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Common password for all users
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// Create 5 users
	log.Println("🌱 Seeding 5 users...")

	for i := 1; i <= 5; i++ {
		username := fmt.Sprintf("user%d", i)
		email := fmt.Sprintf("user%d@caretrack.local", i)

		// Check if exists
		var existing model.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			continue
		}

		user := model.User{
			Username: username,
			Email:    email,
			Password: string(hashedPassword),
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", username, err)
		} else {
			log.Printf("✅ Created user: %s | Email: %s | Pass: %s", username, email, password)
		}
	}

	seedAdmissions(db)

	log.Println("🎉 Seeding completed!")
}

func seedAdmissions(db *gorm.DB) {
	log.Println("🌱 Seeding admission records...")

	admissions := []model.Admission{
		{PatientID: 20, AdmissionDate: "2024-01-02", DischargeDate: "2024-01-05", Diagnosis: "Pneumonia", AttendingDoctorID: 14},
		{PatientID: 21, AdmissionDate: "2024-01-04", DischargeDate: "2024-01-06", Diagnosis: "Appendicitis", AttendingDoctorID: 9},
		{PatientID: 22, AdmissionDate: "2024-01-07", DischargeDate: "2024-01-08", Diagnosis: "Migraine", AttendingDoctorID: 22},
	}

	for _, a := range admissions {
		var existing model.Admission
		err := db.Where("patient_id = ? AND admission_date = ?", a.PatientID, a.AdmissionDate).First(&existing).Error
		if err == nil {
			continue
		}

		if err := db.Create(&a).Error; err != nil {
			log.Printf("❌ Failed to create admission for patient %d: %v", a.PatientID, err)
		} else {
			log.Printf("✅ Created admission: patient %d | %s", a.PatientID, a.Diagnosis)
		}
	}
}
