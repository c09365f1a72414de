package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplaintComment is a message posted on a complaint thread
type ComplaintComment struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ComplaintID string `gorm:"type:uuid;not null;index" json:"complaint_id"`
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Body        string `gorm:"size:1023;not null" json:"body"`

	// Relationships
	User    *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []ComplaintReply `gorm:"foreignKey:ParentID" json:"replies"`
}

// BeforeCreate hook to generate UUID
func (c *ComplaintComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ComplaintComment model
func (ComplaintComment) TableName() string {
	return "complaint_comments"
}

// ComplaintReply answers a single ComplaintComment
type ComplaintReply struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ParentID string `gorm:"type:uuid;not null;index" json:"parent_id"`
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	Body     string `gorm:"size:1023;not null" json:"body"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate hook to generate UUID
func (r *ComplaintReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ComplaintReply model
func (ComplaintReply) TableName() string {
	return "complaint_replies"
}
