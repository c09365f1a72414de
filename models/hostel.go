package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hostel is a residential block students belong to
type Hostel struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// BeforeCreate hook to generate UUID
func (h *Hostel) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Hostel model
func (Hostel) TableName() string {
	return "hostels"
}
