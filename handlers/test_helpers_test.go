package handlers

import (
	"errors"
	"hostel_complaints_go/config"
	"hostel_complaints_go/db"
	"hostel_complaints_go/middleware"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	services.Storage = services.NewLocalStorage(t.TempDir())

	err = testDB.AutoMigrate(
		&models.Hostel{},
		&models.User{},
		&models.Session{},
		&models.ComplaintStatus{},
		&models.Complaint{},
		&models.ComplaintComment{},
		&models.ComplaintReply{},
		&models.AuditLog{},
	)
	require.NoError(t, err)
	require.NoError(t, services.SeedComplaintStatuses(testDB))

	// Set global DB
	db.DB = testDB

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		AppURL:        "http://localhost:8080",
	})

	return e, c, rec
}

// actAs authenticates the request context as user
func actAs(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyUser, user)
}

func createHostel(t *testing.T, database *gorm.DB, name string) *models.Hostel {
	t.Helper()
	hostel := &models.Hostel{Name: name}
	require.NoError(t, database.Create(hostel).Error)
	return hostel
}

func createUser(t *testing.T, database *gorm.DB, username, role string, hostel *models.Hostel) *models.User {
	t.Helper()
	hash, err := services.HashPassword("hostel123")
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Name:     "User " + username,
		Email:    username + "@hostel.test",
		Password: hash,
		RoomNo:   "101",
		Role:     role,
		IsActive: true,
	}
	if hostel != nil {
		user.HostelID = &hostel.ID
	}
	require.NoError(t, database.Create(user).Error)
	return user
}

func createComplaint(t *testing.T, database *gorm.DB, owner *models.User, title string, createdAt time.Time) *models.Complaint {
	t.Helper()
	complaint := &models.Complaint{
		CreatedAt:   createdAt,
		Title:       title,
		Description: "Description of " + title,
		StatusID:    models.ComplaintStatusOpenID,
		HostelID:    owner.HostelID,
		UserID:      owner.ID,
	}
	require.NoError(t, database.Create(complaint).Error)
	return complaint
}

// assertHTTPError checks err is an echo HTTP error with the given status
func assertHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if assert.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err) {
		assert.Equal(t, code, he.Code)
	}
	return he
}

// waitForAudit waits until an audit entry with the given action exists
func waitForAudit(t *testing.T, database *gorm.DB, action models.AuditAction) {
	t.Helper()
	assert.Eventually(t, func() bool {
		var count int64
		database.Model(&models.AuditLog{}).Where("action = ?", action).Count(&count)
		return count > 0
	}, 2*time.Second, 20*time.Millisecond)
}
