package middleware

import (
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAuditContext(t *testing.T) {
	e := echo.New()

	t.Run("FullContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", "test-agent")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		hostelID := "hostel-456"
		user := &models.User{ID: "user-123", Name: "Test User", Role: models.RoleStudent, HostelID: &hostelID}
		c.Set(ContextKeyUser, user)

		handler := AuditContext()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		err := handler(c)
		assert.NoError(t, err)

		auditCtx := GetAuditContext(c)
		assert.Equal(t, "user-123", auditCtx.UserID)
		assert.Equal(t, "Test User", auditCtx.UserName)
		assert.Equal(t, models.RoleStudent, auditCtx.UserRole)
		assert.Equal(t, "hostel-456", auditCtx.HostelID)
		assert.Equal(t, "test-agent", auditCtx.UserAgent)
	})

	t.Run("NoAuth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := AuditContext()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		err := handler(c)
		assert.NoError(t, err)

		auditCtx := GetAuditContext(c)
		assert.Empty(t, auditCtx.UserID)
		assert.Empty(t, auditCtx.HostelID)
	})
}

func TestGetAuditContext(t *testing.T) {
	e := echo.New()

	t.Run("Exists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		expected := services.AuditContext{UserID: "123"}
		c.Set(ContextKeyAuditContext, expected)

		result := GetAuditContext(c)
		assert.Equal(t, expected, result)
	})

	t.Run("BuiltWhenMiddlewareSkipped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.7")
		c := e.NewContext(req, httptest.NewRecorder())
		c.Set(ContextKeyUser, &models.User{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin})

		result := GetAuditContext(c)
		assert.Equal(t, "admin-1", result.UserID)
		assert.Equal(t, "10.0.0.7", result.IPAddress)
		assert.Empty(t, result.HostelID)
	})
}
