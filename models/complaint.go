package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint is an issue raised by a student about their hostel.
// UserID and CreatedAt are write-once; only StatusID changes after creation.
type Complaint struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"size:1023;not null" json:"description"`
	ImageURL    *string `json:"image_url"`
	StatusID    uint    `gorm:"not null;default:1;index" json:"status_id"`
	HostelID    *string `gorm:"type:uuid;index" json:"hostel_id"` // Copied from the submitting user
	UserID      string  `gorm:"<-:create;type:uuid;not null;index" json:"user_id"`

	// Relationships
	Status   *ComplaintStatus   `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	User     *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hostel   *Hostel            `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
	Comments []ComplaintComment `gorm:"foreignKey:ComplaintID" json:"comments,omitempty"`
}

// BeforeCreate hook to generate UUID and store an explicit CreatedAt in UTC
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if !c.CreatedAt.IsZero() {
		c.CreatedAt = c.CreatedAt.UTC()
	}
	return nil
}

// IsOwnedBy checks if the complaint was filed by the given user
func (c *Complaint) IsOwnedBy(userID string) bool {
	return userID != "" && c.UserID == userID
}

// TableName specifies the table name for Complaint model
func (Complaint) TableName() string {
	return "complaints"
}
