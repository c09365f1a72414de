package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username        string     `gorm:"uniqueIndex;not null" json:"username"`
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"not null" json:"-"`
	RoomNo          string     `json:"room_no"`
	HostelID        *string    `gorm:"type:uuid;index" json:"hostel_id"` // Nullable - admins are not tied to a hostel
	PhoneContact    string     `json:"phone_contact"`
	WhatsappContact string     `json:"whatsapp_contact"`
	Role            string     `gorm:"not null;default:student" json:"role"` // admin, student
	IsActive        bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at"`

	// Relationships
	Hostel *Hostel `gorm:"foreignKey:HostelID" json:"hostel,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasHostel checks if the user has a hostel assigned
func (u *User) HasHostel() bool {
	return u.HostelID != nil && *u.HostelID != ""
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
