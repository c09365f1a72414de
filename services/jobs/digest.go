package jobs

import (
	"fmt"
	"hostel_complaints_go/config"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"log"
	"time"

	"gorm.io/gorm"
)

// unassignedHostel labels complaints whose owner has no hostel
const unassignedHostel = "Unassigned"

// unresolvedStatusIDs are the statuses the digest still counts as open
var unresolvedStatusIDs = []uint{models.ComplaintStatusOpenID, models.ComplaintStatusInProgressID}

// CountOpenComplaintsByHostel groups unresolved complaints by the owner's hostel name
func CountOpenComplaintsByHostel(database *gorm.DB) ([]services.HostelComplaintCount, error) {
	type row struct {
		Hostel *string
		Count  int64
	}
	var rows []row
	err := database.Table("complaints").
		Select("hostels.name AS hostel, COUNT(complaints.id) AS count").
		Joins("LEFT JOIN users ON users.id = complaints.user_id").
		Joins("LEFT JOIN hostels ON hostels.id = users.hostel_id").
		Where("complaints.status_id IN ?", unresolvedStatusIDs).
		Group("hostels.name").
		Order("hostels.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count open complaints: %w", err)
	}

	counts := make([]services.HostelComplaintCount, 0, len(rows))
	for _, r := range rows {
		name := unassignedHostel
		if r.Hostel != nil && *r.Hostel != "" {
			name = *r.Hostel
		}
		counts = append(counts, services.HostelComplaintCount{Hostel: name, Count: r.Count})
	}
	return counts, nil
}

// SendOpenComplaintsDigest emails every active admin a per-hostel summary of unresolved complaints.
// Nothing is sent when there are no open complaints or no admins.
func SendOpenComplaintsDigest(database *gorm.DB, cfg *config.Config, now time.Time) error {
	counts, err := CountOpenComplaintsByHostel(database)
	if err != nil {
		return err
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		log.Println("[JOB] No open complaints, digest skipped")
		return nil
	}

	var adminEmails []string
	if err := database.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Pluck("email", &adminEmails).Error; err != nil {
		return fmt.Errorf("failed to fetch admin emails: %w", err)
	}
	if len(adminEmails) == 0 {
		log.Println("[JOB] No active admins, digest skipped")
		return nil
	}

	email := services.BuildOpenComplaintsDigestEmail(adminEmails, services.OpenComplaintsDigestData{
		Date:    now.Format("2006-01-02"),
		Total:   total,
		Hostels: counts,
		AppURL:  cfg.AppURL,
	})
	if err := services.SendEmail(cfg, email); err != nil {
		return err
	}

	log.Printf("[JOB] Digest sent to %d admins (%d open complaints)", len(adminEmails), total)
	return nil
}
