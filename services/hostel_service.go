package services

import (
	"fmt"
	"hostel_complaints_go/models"
	"strings"

	"gorm.io/gorm"
)

// ListHostels returns all hostels sorted by name
func ListHostels(db *gorm.DB) ([]models.Hostel, error) {
	var hostels []models.Hostel
	if err := db.Order("name ASC").Find(&hostels).Error; err != nil {
		return nil, fmt.Errorf("failed to list hostels: %w", err)
	}
	return hostels, nil
}

// EnsureHostel returns the hostel with the given name, creating it if needed
func EnsureHostel(db *gorm.DB, name string) (*models.Hostel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "hostel", Message: "The hostel field is required."}
	}

	hostel := models.Hostel{}
	if err := db.Where(models.Hostel{Name: name}).FirstOrCreate(&hostel).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure hostel %q: %w", name, err)
	}
	return &hostel, nil
}
