package models

import "time"

// Seeded status identifiers. New complaints always start at ComplaintStatusOpenID.
const (
	ComplaintStatusOpenID       uint = 1
	ComplaintStatusInProgressID uint = 2
	ComplaintStatusResolvedID   uint = 3
	ComplaintStatusRejectedID   uint = 4
)

const (
	ComplaintStatusOpen       = "open"
	ComplaintStatusInProgress = "in_progress"
	ComplaintStatusResolved   = "resolved"
	ComplaintStatusRejected   = "rejected"
)

// ComplaintStatus is the lookup table describing where a complaint stands
type ComplaintStatus struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Message string `gorm:"not null" json:"message"`
}

// DefaultComplaintStatuses returns the statuses every installation starts with
func DefaultComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{
		{ID: ComplaintStatusOpenID, Name: ComplaintStatusOpen, Message: "Your complaint has been received and is waiting to be reviewed."},
		{ID: ComplaintStatusInProgressID, Name: ComplaintStatusInProgress, Message: "The hostel administration is working on your complaint."},
		{ID: ComplaintStatusResolvedID, Name: ComplaintStatusResolved, Message: "Your complaint has been resolved."},
		{ID: ComplaintStatusRejectedID, Name: ComplaintStatusRejected, Message: "Your complaint was reviewed and will not be acted upon."},
	}
}

// TableName specifies the table name for ComplaintStatus model
func (ComplaintStatus) TableName() string {
	return "complaint_statuses"
}
