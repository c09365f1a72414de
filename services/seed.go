package services

import (
	"hostel_complaints_go/models"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedAdminFromEnv creates an admin user from environment variables
// Only runs if ADMIN_EMAIL and ADMIN_PASSWORD are set
// and no admin user exists yet
func SeedAdminFromEnv(db *gorm.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	username := os.Getenv("ADMIN_USERNAME")

	// Skip if env vars not set
	if email == "" || password == "" {
		return nil
	}

	if name == "" {
		name = "Hostel Administrator"
	}
	if username == "" {
		username = "admin"
	}

	// Check if an admin already exists
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("[SEED] Admin user already exists, skipping seed")
		return nil
	}

	// Check if a user with this email already exists
	var existingUser models.User
	if err := db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Printf("[SEED] User with email %s already exists, skipping admin seed", email)
		return nil
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}

	// Admins are not tied to a hostel
	user := &models.User{
		ID:       uuid.New().String(),
		Username: username,
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("[SEED] Created admin user: %s", email)
	return nil
}
