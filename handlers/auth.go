package handlers

import (
	"errors"
	"hostel_complaints_go/db"
	"hostel_complaints_go/middleware"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// LoginRequest accepts a username or email in Login
type LoginRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// LoginHandler authenticates a user and issues a session cookie and bearer token
func LoginHandler(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := services.Authenticate(db.DB, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			services.LogSecurityEvent("LOGIN_FAILED", req.Login, "ip="+c.RealIP())
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid login or password")
		}
		return respondError(c, err)
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	middleware.SetSessionCookie(c, session)

	c.Set(middleware.ContextKeyUser, user)
	services.LogAuditEvent(db.DB, middleware.BuildAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionLogin,
		ResourceType: "User",
		ResourceID:   user.ID,
		ResourceName: user.Username,
		Description:  "User logged in",
	})

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	})
}

// LogoutHandler deletes the current session
func LogoutHandler(c echo.Context) error {
	session := middleware.GetCurrentSession(c)
	if session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, services.ErrUnauthenticated.Error())
	}

	if err := services.DeleteSession(db.DB, session.Token); err != nil {
		return respondError(c, err)
	}
	middleware.ClearSessionCookie(c)

	if user := middleware.GetCurrentUser(c); user != nil {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
			Action:       models.AuditActionLogout,
			ResourceType: "User",
			ResourceID:   user.ID,
			ResourceName: user.Username,
			Description:  "User logged out",
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// MeHandler returns the authenticated user
func MeHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, services.ErrUnauthenticated.Error())
	}
	return c.JSON(http.StatusOK, user)
}
