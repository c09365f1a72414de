package jobs

import (
	"fmt"
	"hostel_complaints_go/config"
	"hostel_complaints_go/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler registers the periodic jobs and starts the cron runner.
// The caller stops the returned runner on shutdown.
func StartScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.JobsTimezone)
	if err != nil {
		log.Printf("[CRON] Unknown timezone %q, using UTC", cfg.JobsTimezone)
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.CleanupSchedule, func() {
		if _, err := services.CleanupExpiredSessions(database); err != nil {
			log.Printf("[CRON] Session cleanup failed: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule session cleanup: %w", err)
	}

	if _, err := c.AddFunc(cfg.DigestSchedule, func() {
		log.Println("[CRON] Sending open complaints digest...")
		if err := SendOpenComplaintsDigest(database, cfg, time.Now().In(loc)); err != nil {
			log.Printf("[CRON] Digest failed: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule complaints digest: %w", err)
	}

	c.Start()
	log.Printf("[CRON] Scheduler started (timezone %s)", loc)
	return c, nil
}
