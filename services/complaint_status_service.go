package services

import (
	"errors"
	"fmt"
	"hostel_complaints_go/models"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedComplaintStatuses inserts the default statuses, leaving existing rows untouched
func SeedComplaintStatuses(db *gorm.DB) error {
	statuses := models.DefaultComplaintStatuses()
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses)
	if result.Error != nil {
		return fmt.Errorf("failed to seed complaint statuses: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("[SEED] Created %d complaint statuses", result.RowsAffected)
	}
	return nil
}

// ListComplaintStatuses returns every status ordered by id
func ListComplaintStatuses(db *gorm.DB) ([]models.ComplaintStatus, error) {
	var statuses []models.ComplaintStatus
	if err := db.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaint statuses: %w", err)
	}
	return statuses, nil
}

// GetComplaintStatus loads a single status, returning ErrNotFound when absent
func GetComplaintStatus(db *gorm.DB, id uint) (*models.ComplaintStatus, error) {
	var status models.ComplaintStatus
	if err := db.First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("complaint status")
		}
		return nil, fmt.Errorf("failed to fetch complaint status: %w", err)
	}
	return &status, nil
}

// InitialComplaintStatus returns the status every new complaint starts with
func InitialComplaintStatus(db *gorm.DB) (*models.ComplaintStatus, error) {
	return GetComplaintStatus(db, models.ComplaintStatusOpenID)
}
