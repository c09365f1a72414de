package services

import (
	"errors"
	"fmt"
	"hostel_complaints_go/models"

	"gorm.io/gorm"
)

// CommentInput is the payload for comments and replies
type CommentInput struct {
	Body string `json:"body" form:"body" validate:"required,max=1023"`
}

// loadComplaintForCaller fetches a complaint the caller is allowed to discuss:
// its owner or any admin
func loadComplaintForCaller(db *gorm.DB, caller *Caller, complaintID string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := db.First(&complaint, "id = ?", complaintID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("complaint")
		}
		return nil, fmt.Errorf("failed to fetch complaint: %w", err)
	}
	if !caller.IsAdmin && !complaint.IsOwnedBy(caller.UserID) {
		return nil, ErrForbidden
	}
	return &complaint, nil
}

func validateCommentInput(input *CommentInput) error {
	input.Body = SanitizeText(input.Body)
	return ValidateStruct(input)
}

// AddComment posts a comment on a complaint
func AddComment(db *gorm.DB, caller *Caller, complaintID string, input CommentInput) (*models.ComplaintComment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := validateCommentInput(&input); err != nil {
		return nil, err
	}
	complaint, err := loadComplaintForCaller(db, caller, complaintID)
	if err != nil {
		return nil, err
	}

	comment := &models.ComplaintComment{
		ComplaintID: complaint.ID,
		UserID:      caller.UserID,
		Body:        input.Body,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// AddReply answers an existing comment
func AddReply(db *gorm.DB, caller *Caller, commentID string, input CommentInput) (*models.ComplaintReply, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := validateCommentInput(&input); err != nil {
		return nil, err
	}

	var comment models.ComplaintComment
	if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("comment")
		}
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if _, err := loadComplaintForCaller(db, caller, comment.ComplaintID); err != nil {
		return nil, err
	}

	reply := &models.ComplaintReply{
		ParentID: comment.ID,
		UserID:   caller.UserID,
		Body:     input.Body,
	}
	if err := db.Create(reply).Error; err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return reply, nil
}

// ListComments returns a complaint's comments, oldest first, each with its replies
func ListComments(db *gorm.DB, caller *Caller, complaintID string) ([]models.ComplaintComment, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if _, err := loadComplaintForCaller(db, caller, complaintID); err != nil {
		return nil, err
	}

	comments := []models.ComplaintComment{}
	err := db.Preload("User").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("complaint_replies.created_at ASC")
		}).
		Preload("Replies.User").
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
