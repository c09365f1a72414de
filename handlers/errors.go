package handlers

import (
	"errors"
	"hostel_complaints_go/services"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondError translates a service error into an echo HTTP error.
// Validation failures carry the offending field; unexpected errors are logged and hidden.
func respondError(c echo.Context, err error) error {
	status := services.HTTPStatusFromError(err)

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(status, map[string]string{
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	}

	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Path(), err)
		return echo.NewHTTPError(status, "Internal server error")
	}

	return echo.NewHTTPError(status, err.Error())
}
