package services

import (
	"errors"
	"fmt"
	"hostel_complaints_go/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// CreateComplaintInput is the payload a student submits
type CreateComplaintInput struct {
	Title       string  `json:"title" form:"title" validate:"required,max=255"`
	Description string  `json:"description" form:"description" validate:"required,max=1023"`
	ImageURL    *string `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

// OwnComplaint is the projection a student sees of their own complaints
type OwnComplaint struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ComplaintFilter narrows the admin feed. Hostel and Status match names exactly.
type ComplaintFilter struct {
	DateRange
	Hostel string
	Status string
}

type ComplaintStatusView struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ComplaintUserView struct {
	Username        string  `json:"username"`
	Name            string  `json:"name"`
	RoomNo          string  `json:"room_no"`
	HostelID        *string `json:"hostel_id"`
	PhoneContact    string  `json:"phone_contact"`
	WhatsappContact string  `json:"whatsapp_contact"`
	Email           string  `json:"email"`
	Hostel          string  `json:"hostel"`
}

// AdminComplaint is a complaint enriched with its status and owner details
type AdminComplaint struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StatusID    uint                `json:"status_id"`
	ImageURL    *string             `json:"image_url"`
	CreatedAt   time.Time           `json:"created_at"`
	Status      ComplaintStatusView `json:"status"`
	User        ComplaintUserView   `json:"user"`
}

// StatusChange describes a completed status update
type StatusChange struct {
	Complaint   models.Complaint
	OldStatusID uint
	NewStatus   models.ComplaintStatus
}

// adminComplaintRow is the flat shape of the joined admin query.
// Joined columns are pointers so a dangling reference scans as nil.
type adminComplaintRow struct {
	ID                  string
	UserID              string
	Title               string
	Description         string
	StatusID            uint
	ImageURL            *string
	CreatedAt           time.Time
	StatusName          *string
	StatusMessage       *string
	UserUsername        *string
	UserName            *string
	UserRoomNo          *string
	UserHostelID        *string
	UserPhoneContact    *string
	UserWhatsappContact *string
	UserEmail           *string
	HostelName          *string
}

const adminComplaintColumns = `complaints.id, complaints.user_id, complaints.title, complaints.description,
	complaints.status_id, complaints.image_url, complaints.created_at,
	complaint_statuses.name AS status_name, complaint_statuses.message AS status_message,
	users.username AS user_username, users.name AS user_name, users.room_no AS user_room_no,
	users.hostel_id AS user_hostel_id, users.phone_contact AS user_phone_contact,
	users.whatsapp_contact AS user_whatsapp_contact, users.email AS user_email,
	hostels.name AS hostel_name`

// adminComplaintQuery joins complaints with their status, owner and the owner's hostel
func adminComplaintQuery(db *gorm.DB) *gorm.DB {
	return db.Table("complaints").
		Select(adminComplaintColumns).
		Joins("LEFT JOIN complaint_statuses ON complaint_statuses.id = complaints.status_id").
		Joins("LEFT JOIN users ON users.id = complaints.user_id").
		Joins("LEFT JOIN hostels ON hostels.id = users.hostel_id")
}

// applyDateRange restricts a query on the given timestamp column (bounds inclusive).
// Bounds are converted to UTC to match how timestamps are stored.
func applyDateRange(query *gorm.DB, column string, r DateRange) *gorm.DB {
	if r.Start != nil {
		query = query.Where(column+" >= ?", r.Start.UTC())
	}
	if r.End != nil {
		query = query.Where(column+" <= ?", r.End.UTC())
	}
	return query
}

func (r adminComplaintRow) toView() AdminComplaint {
	return AdminComplaint{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		StatusID:    r.StatusID,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		Status: ComplaintStatusView{
			Name:    deref(r.StatusName),
			Message: deref(r.StatusMessage),
		},
		User: ComplaintUserView{
			Username:        deref(r.UserUsername),
			Name:            deref(r.UserName),
			RoomNo:          deref(r.UserRoomNo),
			HostelID:        r.UserHostelID,
			PhoneContact:    deref(r.UserPhoneContact),
			WhatsappContact: deref(r.UserWhatsappContact),
			Email:           deref(r.UserEmail),
			Hostel:          deref(r.HostelName),
		},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListOwnComplaints returns the caller's complaints created within the range
func ListOwnComplaints(db *gorm.DB, caller *Caller, r DateRange) ([]OwnComplaint, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	query := db.Model(&models.Complaint{}).
		Select("id, title, description, image_url, created_at").
		Where("user_id = ?", caller.UserID)
	query = applyDateRange(query, "created_at", r)

	complaints := []OwnComplaint{}
	if err := query.Order("created_at ASC").Scan(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// ListAllComplaints returns the admin feed: every complaint joined with its
// status and owner, filtered by date range, exact status name and exact hostel name
func ListAllComplaints(db *gorm.DB, caller *Caller, filter ComplaintFilter) ([]AdminComplaint, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	query := applyDateRange(adminComplaintQuery(db), "complaints.created_at", filter.DateRange)
	if filter.Status != "" {
		query = query.Where("complaint_statuses.name = ?", filter.Status)
	}
	if filter.Hostel != "" {
		query = query.Where("hostels.name = ?", filter.Hostel)
	}

	var rows []adminComplaintRow
	if err := query.Order("complaints.created_at ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	complaints := make([]AdminComplaint, 0, len(rows))
	for _, row := range rows {
		complaints = append(complaints, row.toView())
	}
	return complaints, nil
}

// GetComplaint returns one enriched complaint to its owner or an admin
func GetComplaint(db *gorm.DB, caller *Caller, id string) (*AdminComplaint, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	var rows []adminComplaintRow
	if err := adminComplaintQuery(db).Where("complaints.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}
	if len(rows) == 0 {
		return nil, notFound("complaint")
	}
	if !caller.IsAdmin && rows[0].UserID != caller.UserID {
		return nil, ErrForbidden
	}

	view := rows[0].toView()
	return &view, nil
}

// CreateComplaint validates the payload and files a complaint for the caller.
// The complaint starts in the initial status and inherits the caller's hostel.
func CreateComplaint(db *gorm.DB, caller *Caller, input CreateComplaintInput) (*models.Complaint, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	input.Title = SanitizeText(input.Title)
	input.Description = SanitizeText(input.Description)
	if input.ImageURL != nil {
		trimmed := strings.TrimSpace(*input.ImageURL)
		if trimmed == "" {
			input.ImageURL = nil
		} else {
			input.ImageURL = &trimmed
		}
	}

	if err := ValidateStruct(&input); err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		StatusID:    models.ComplaintStatusOpenID,
		HostelID:    caller.HostelID,
		UserID:      caller.UserID,
	}

	if err := db.Create(complaint).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return complaint, nil
}

// EditComplaintStatus moves a complaint to another status (admin only)
func EditComplaintStatus(db *gorm.DB, caller *Caller, complaintID string, statusID uint) (*StatusChange, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	var complaint models.Complaint
	if err := db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("complaint")
		}
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}

	status, err := GetComplaintStatus(db, statusID)
	if err != nil {
		return nil, err
	}

	oldStatusID := complaint.StatusID
	if err := db.Model(&complaint).Update("status_id", status.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to update complaint status: %w", err)
	}
	complaint.StatusID = status.ID

	return &StatusChange{
		Complaint:   complaint,
		OldStatusID: oldStatusID,
		NewStatus:   *status,
	}, nil
}

// DeleteComplaint removes a complaint with its comments and their replies (admin only)
// and returns the deleted row. Replies, comments and the complaint row go in a single transaction.
func DeleteComplaint(db *gorm.DB, caller *Caller, complaintID string) (*models.Complaint, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	var complaint models.Complaint
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&complaint, "id = ?", complaintID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("complaint")
			}
			return fmt.Errorf("failed to fetch complaint: %w", err)
		}

		var commentIDs []string
		if err := tx.Model(&models.ComplaintComment{}).
			Where("complaint_id = ?", complaintID).
			Pluck("id", &commentIDs).Error; err != nil {
			return fmt.Errorf("failed to collect complaint comments: %w", err)
		}

		if len(commentIDs) > 0 {
			if err := tx.Where("parent_id IN ?", commentIDs).Delete(&models.ComplaintReply{}).Error; err != nil {
				return fmt.Errorf("failed to delete comment replies: %w", err)
			}
		}

		if err := tx.Where("complaint_id = ?", complaintID).Delete(&models.ComplaintComment{}).Error; err != nil {
			return fmt.Errorf("failed to delete complaint comments: %w", err)
		}

		if err := tx.Delete(&complaint).Error; err != nil {
			return fmt.Errorf("failed to delete complaint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}
