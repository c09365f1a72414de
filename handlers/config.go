package handlers

import (
	"hostel_complaints_go/config"

	"github.com/labstack/echo/v4"
)

// getConfig returns the application config injected by the server middleware
func getConfig(c echo.Context) *config.Config {
	cfg, _ := c.Get("config").(*config.Config)
	return cfg
}
