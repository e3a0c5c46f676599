package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
	"github.com/SabinGhost19/RoomBooking/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportRow struct {
	models.Booking
	RoomName      string `json:"room_name"`
	OrganizerName string `json:"organizer_name"`
}

// ExportBookings streams the (optionally date- and status-filtered) booking
// ledger as an .xlsx download. Manager only.
func ExportBookings(c *gin.Context) {
	sweepElapsed()

	q := config.DB.Model(&models.Booking{}).
		Select("bookings.*, rooms.name AS room_name, users.full_name AS organizer_name").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN users ON users.id = bookings.user_id")

	if v := c.Query("start_date"); v != "" {
		if d, err := utils.NormalizeDate(v); err == nil {
			q = q.Where("bookings.booking_date >= ?", d)
		}
	}
	if v := c.Query("end_date"); v != "" {
		if d, err := utils.NormalizeDate(v); err == nil {
			q = q.Where("bookings.booking_date <= ?", d)
		}
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("bookings.status = ?", v)
	}

	rows := make([]exportRow, 0)
	if err := q.Order("bookings.booking_date, bookings.start_time").Scan(&rows).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	header := []string{"ID", "Room", "Organizer", "Date", "Start", "End", "Status", "Approval", "Rejection Reason", "Created At"}
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			respondError(c, services.ErrInternal(err))
			return
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			respondError(c, services.ErrInternal(err))
			return
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		start, _ := excelize.CoordinatesToCellName(1, 1)
		end, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, start, end, style)
	}

	for i, r := range rows {
		reason := ""
		if r.RejectionReason != nil {
			reason = *r.RejectionReason
		}
		values := []interface{}{
			r.ID,
			r.RoomName,
			r.OrganizerName,
			r.BookingDate,
			r.StartTime,
			r.EndTime,
			string(r.Status),
			string(r.ApprovalStatus),
			reason,
			r.CreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				respondError(c, services.ErrInternal(err))
				return
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				respondError(c, services.ErrInternal(err))
				return
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
