package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/metrics"
	"github.com/SabinGhost19/RoomBooking/models"
)

// PendingBooking is a pending-queue row enriched for the manager view.
type PendingBooking struct {
	models.Booking
	RoomName      string `json:"room_name"`
	OrganizerName string `json:"organizer_name"`
}

func loadPendingBooking(db *gorm.DB, bookingID uint) (*models.Booking, *Error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("booking not found")
		}
		return nil, ErrInternal(err)
	}
	if booking.ApprovalStatus != models.ApprovalStatusPending {
		return nil, ErrInvalidState(fmt.Sprintf("booking already %s", booking.ApprovalStatus))
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrInvalidState("booking is cancelled")
	}
	return &booking, nil
}

// ApproveBooking marks a pending booking approved. Approved and rejected are
// terminal, a second decision fails with invalid_state.
func ApproveBooking(db *gorm.DB, bookingID uint, manager models.User) (*models.Booking, *Error) {
	booking, svcErr := loadPendingBooking(db, bookingID)
	if svcErr != nil {
		return nil, svcErr
	}

	now := time.Now()
	booking.ApprovalStatus = models.ApprovalStatusApproved
	booking.ApprovedByID = &manager.ID
	booking.ApprovedAt = &now
	if err := db.Save(booking).Error; err != nil {
		return nil, ErrInternal(err)
	}

	metrics.IncManagerDecision("approved")
	return booking, nil
}

// RejectBooking marks a pending booking rejected and cancels it so the slot
// frees up for other requests.
func RejectBooking(db *gorm.DB, bookingID uint, manager models.User, reason string) (*models.Booking, *Error) {
	if len(reason) > 500 {
		return nil, ErrValidation("rejection reason must be at most 500 characters")
	}

	booking, svcErr := loadPendingBooking(db, bookingID)
	if svcErr != nil {
		return nil, svcErr
	}

	now := time.Now()
	booking.ApprovalStatus = models.ApprovalStatusRejected
	booking.ApprovedByID = &manager.ID
	booking.ApprovedAt = &now
	booking.Status = models.BookingStatusCancelled
	if reason != "" {
		booking.RejectionReason = &reason
	}
	if err := db.Save(booking).Error; err != nil {
		return nil, ErrInternal(err)
	}

	metrics.IncManagerDecision("rejected")
	return booking, nil
}

// ListPendingBookings pages through bookings awaiting a decision, oldest
// request first, enriched with room and organizer names.
func ListPendingBookings(db *gorm.DB, skip, limit int) ([]PendingBooking, int64, *Error) {
	base := db.Model(&models.Booking{}).
		Where("bookings.approval_status = ? AND bookings.status <> ?",
			models.ApprovalStatusPending, models.BookingStatusCancelled)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, ErrInternal(err)
	}

	rows := make([]PendingBooking, 0)
	err := base.
		Select("bookings.*, rooms.name AS room_name, users.full_name AS organizer_name").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Order("bookings.created_at ASC").
		Offset(skip).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, ErrInternal(err)
	}
	return rows, total, nil
}
