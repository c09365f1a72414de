package handlers

import (
	"hostel_complaints_go/db"
	"hostel_complaints_go/middleware"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListOwnComplaintsHandler returns the caller's complaints, optionally bounded by start_date/end_date
func ListOwnComplaintsHandler(c echo.Context) error {
	dateRange, err := services.ParseDateRange(c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return respondError(c, err)
	}

	complaints, err := services.ListOwnComplaints(db.DB, middleware.GetCaller(c), dateRange)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, complaints)
}

// CreateComplaintHandler files a new complaint for the caller
func CreateComplaintHandler(c echo.Context) error {
	var input services.CreateComplaintInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	complaint, err := services.CreateComplaint(db.DB, middleware.GetCaller(c), input)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionCreate,
		ResourceType: "Complaint",
		ResourceID:   complaint.ID,
		ResourceName: complaint.Title,
		Description:  "Complaint filed",
		NewValues:    complaint,
	})

	return c.JSON(http.StatusCreated, complaint)
}

// GetComplaintHandler returns one complaint to its owner or an admin
func GetComplaintHandler(c echo.Context) error {
	complaint, err := services.GetComplaint(db.DB, middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, complaint)
}

// UploadComplaintImageHandler stores the multipart "image" file and returns its URL
func UploadComplaintImageHandler(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return respondError(c, &services.ValidationError{Field: "image", Message: "The image field is required."})
	}

	baseURL := ""
	if cfg := getConfig(c); cfg != nil {
		baseURL = cfg.AppURL
	}

	image, err := services.UploadComplaintImage(c.Request().Context(), services.Storage, middleware.GetCaller(c), baseURL, fileHeader)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, image)
}

// ComplaintImageHandler streams a picture kept in private storage
func ComplaintImageHandler(c echo.Context) error {
	reader, contentType, err := services.OpenComplaintImage(c.Request().Context(), services.Storage, middleware.GetCaller(c), c.Param("*"))
	if err != nil {
		return respondError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", "private, max-age=86400")
	return c.Stream(http.StatusOK, contentType, reader)
}
