package services

import (
	"hostel_complaints_go/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated shared-cache in-memory database so goroutines see the same data
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:mem_" + uuid.New().String() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Hostel{},
		&models.User{},
		&models.Session{},
		&models.ComplaintStatus{},
		&models.Complaint{},
		&models.ComplaintComment{},
		&models.ComplaintReply{},
		&models.AuditLog{},
	))
	require.NoError(t, SeedComplaintStatuses(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createHostel(t *testing.T, db *gorm.DB, name string) *models.Hostel {
	t.Helper()
	hostel := &models.Hostel{Name: name}
	require.NoError(t, db.Create(hostel).Error)
	return hostel
}

func createStudent(t *testing.T, db *gorm.DB, username string, hostel *models.Hostel) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Name:     "Student " + username,
		Email:    username + "@hostel.test",
		Password: "x",
		RoomNo:   "101",
		Role:     models.RoleStudent,
		IsActive: true,
	}
	if hostel != nil {
		user.HostelID = &hostel.ID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Name:     "Admin " + username,
		Email:    username + "@hostel.test",
		Password: "x",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createComplaint inserts a complaint directly with a fixed creation time
func createComplaint(t *testing.T, db *gorm.DB, owner *models.User, title string, statusID uint, createdAt time.Time) *models.Complaint {
	t.Helper()
	complaint := &models.Complaint{
		CreatedAt:   createdAt,
		Title:       title,
		Description: "Description of " + title,
		StatusID:    statusID,
		HostelID:    owner.HostelID,
		UserID:      owner.ID,
	}
	require.NoError(t, db.Create(complaint).Error)
	return complaint
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
