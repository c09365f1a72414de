package handlers

import (
	"fmt"
	"hostel_complaints_go/db"
	"hostel_complaints_go/middleware"
	"hostel_complaints_go/models"
	"hostel_complaints_go/services"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// complaintFilterFromQuery reads start_date, end_date, hostel and status
func complaintFilterFromQuery(c echo.Context) (services.ComplaintFilter, error) {
	dateRange, err := services.ParseDateRange(c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return services.ComplaintFilter{}, err
	}
	return services.ComplaintFilter{
		DateRange: dateRange,
		Hostel:    c.QueryParam("hostel"),
		Status:    c.QueryParam("status"),
	}, nil
}

// ListAllComplaintsHandler returns the admin feed
func ListAllComplaintsHandler(c echo.Context) error {
	filter, err := complaintFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	complaints, err := services.ListAllComplaints(db.DB, middleware.GetCaller(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, complaints)
}

// ExportComplaintsHandler streams the filtered admin feed as an Excel workbook
func ExportComplaintsHandler(c echo.Context) error {
	filter, err := complaintFilterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}

	buf, count, err := services.ExportComplaintsXLSX(db.DB, middleware.GetCaller(c), filter)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionExport,
		ResourceType: "Complaint",
		Description:  fmt.Sprintf("Exported %d complaints", count),
		NewValues:    map[string]string{"hostel": filter.Hostel, "status": filter.Status},
	})

	filename := fmt.Sprintf("complaints_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// EditComplaintStatusRequest is the body of PUT /api/admin/complaints/:id/status
type EditComplaintStatusRequest struct {
	StatusID uint `json:"status_id" form:"status_id"`
}

// EditComplaintStatusHandler moves a complaint to another status and notifies its owner
func EditComplaintStatusHandler(c echo.Context) error {
	var req EditComplaintStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.StatusID == 0 {
		return respondError(c, &services.ValidationError{Field: "status_id", Message: "The status_id field is required."})
	}

	change, err := services.EditComplaintStatus(db.DB, middleware.GetCaller(c), c.Param("id"), req.StatusID)
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionStatusChange,
		ResourceType: "Complaint",
		ResourceID:   change.Complaint.ID,
		ResourceName: change.Complaint.Title,
		Description:  "Complaint status changed to " + change.NewStatus.Name,
		OldValues:    map[string]uint{"status_id": change.OldStatusID},
		NewValues:    map[string]uint{"status_id": change.NewStatus.ID},
	})

	if change.OldStatusID != change.NewStatus.ID {
		notifyStatusChange(c, change)
	}

	return c.JSON(http.StatusOK, change.Complaint)
}

// notifyStatusChange emails the complaint owner; failures are only logged
func notifyStatusChange(c echo.Context, change *services.StatusChange) {
	cfg := getConfig(c)
	if cfg == nil {
		return
	}

	var owner models.User
	if err := db.DB.Select("id", "name", "email").First(&owner, "id = ?", change.Complaint.UserID).Error; err != nil {
		log.Printf("[EMAIL] Owner of complaint %s not found: %v", change.Complaint.ID, err)
		return
	}
	if owner.Email == "" {
		return
	}

	email := services.BuildStatusChangedEmail(owner.Email, services.StatusChangedEmailData{
		StudentName:    owner.Name,
		ComplaintTitle: change.Complaint.Title,
		StatusName:     change.NewStatus.Name,
		StatusMessage:  change.NewStatus.Message,
		ComplaintURL:   fmt.Sprintf("%s/complaints/%s", cfg.AppURL, change.Complaint.ID),
	})
	services.SendEmailAsync(cfg, email)
}

// DeleteComplaintHandler removes a complaint with its discussion and its stored picture
func DeleteComplaintHandler(c echo.Context) error {
	deleted, err := services.DeleteComplaint(db.DB, middleware.GetCaller(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionDelete,
		ResourceType: "Complaint",
		ResourceID:   deleted.ID,
		ResourceName: deleted.Title,
		Description:  "Complaint deleted with its comments and replies",
		OldValues:    deleted,
	})

	if deleted.ImageURL != nil {
		baseURL := ""
		if cfg := getConfig(c); cfg != nil {
			baseURL = cfg.AppURL
		}
		if err := services.DeleteComplaintImage(c.Request().Context(), services.Storage, baseURL, *deleted.ImageURL); err != nil {
			log.Printf("[ERROR] Failed to delete picture of complaint %s: %v", deleted.ID, err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}
