package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const complaintsSheet = "Complaints"

var complaintExportHeaders = []string{
	"ID", "Created At", "Title", "Description", "Status", "Hostel",
	"Student", "Username", "Room No", "Email", "Phone", "WhatsApp", "Image URL",
}

// ExportComplaintsXLSX renders the admin feed for the given filter as an Excel workbook
func ExportComplaintsXLSX(db *gorm.DB, caller *Caller, filter ComplaintFilter) (*bytes.Buffer, int, error) {
	complaints, err := ListAllComplaints(db, caller, filter)
	if err != nil {
		return nil, 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", complaintsSheet)

	for i, header := range complaintExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(complaintsSheet, cell, header)
	}

	for i, complaint := range complaints {
		row := i + 2
		imageURL := ""
		if complaint.ImageURL != nil {
			imageURL = *complaint.ImageURL
		}
		values := []interface{}{
			complaint.ID,
			complaint.CreatedAt.UTC().Format(time.RFC3339),
			complaint.Title,
			complaint.Description,
			complaint.Status.Name,
			complaint.User.Hostel,
			complaint.User.Name,
			complaint.User.Username,
			complaint.User.RoomNo,
			complaint.User.Email,
			complaint.User.PhoneContact,
			complaint.User.WhatsappContact,
			imageURL,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(complaintsSheet, cell, value)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(complaintExportHeaders))
	f.SetColWidth(complaintsSheet, "A", lastCol, 20)
	f.SetColWidth(complaintsSheet, "D", "D", 60)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(complaintsSheet, "A1", lastCol+"1", headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	return buf, len(complaints), nil
}
