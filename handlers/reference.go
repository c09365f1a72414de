package handlers

import (
	"hostel_complaints_go/db"
	"hostel_complaints_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListStatusesHandler returns the complaint status lookup table
func ListStatusesHandler(c echo.Context) error {
	statuses, err := services.ListComplaintStatuses(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, statuses)
}

// ListHostelsHandler returns all hostels
func ListHostelsHandler(c echo.Context) error {
	hostels, err := services.ListHostels(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hostels)
}

// HealthHandler reports whether the database answers
func HealthHandler(c echo.Context) error {
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
