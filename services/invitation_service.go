package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/metrics"
	"github.com/SabinGhost19/RoomBooking/models"
)

// NotificationRow is an invitation enriched with inviter, room and slot
// details for the notification feed.
type NotificationRow struct {
	models.BookingInvitation
	InviterName  string `json:"inviter_name"`
	InviterEmail string `json:"inviter_email"`
	RoomID       uint   `json:"room_id"`
	RoomName     string `json:"room_name"`
	BookingDate  string `json:"booking_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

func loadInvitationFor(db *gorm.DB, invitationID uint, user models.User) (*models.BookingInvitation, *Error) {
	var inv models.BookingInvitation
	if err := db.First(&inv, invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("invitation not found")
		}
		return nil, ErrInternal(err)
	}
	if inv.InviteeID != user.ID {
		return nil, ErrForbidden("you are not authorized to respond to this invitation")
	}
	return &inv, nil
}

// RespondToInvitation lets the invitee accept or reject a pending
// invitation. Rejecting also removes them from the booking's participants.
// Either way the invitation is marked read; the booking itself is untouched.
func RespondToInvitation(db *gorm.DB, invitationID uint, user models.User, accept bool, responseMessage string) (*models.BookingInvitation, *Error) {
	if len(responseMessage) > 500 {
		return nil, ErrValidation("response message must be at most 500 characters")
	}

	inv, svcErr := loadInvitationFor(db, invitationID, user)
	if svcErr != nil {
		return nil, svcErr
	}
	if inv.Status != models.InvitationStatusPending {
		return nil, ErrInvalidState(fmt.Sprintf("invitation already %s", inv.Status))
	}

	now := time.Now()
	inv.RespondedAt = &now
	inv.IsRead = true
	if accept {
		inv.Status = models.InvitationStatusAccepted
	} else {
		inv.Status = models.InvitationStatusRejected
		if responseMessage != "" {
			inv.ResponseMessage = &responseMessage
		}
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(inv).Error; err != nil {
			return err
		}
		if !accept {
			return tx.Exec("DELETE FROM booking_participants WHERE booking_id = ? AND user_id = ?",
				inv.BookingID, user.ID).Error
		}
		return nil
	})
	if txErr != nil {
		return nil, ErrInternal(txErr)
	}

	if accept {
		metrics.IncInvitationResponse("accepted")
	} else {
		metrics.IncInvitationResponse("rejected")
	}
	return inv, nil
}

// MarkInvitationRead sets the read flag; response state stays as is.
func MarkInvitationRead(db *gorm.DB, invitationID uint, user models.User) (*models.BookingInvitation, *Error) {
	inv, svcErr := loadInvitationFor(db, invitationID, user)
	if svcErr != nil {
		return nil, svcErr
	}

	inv.IsRead = true
	if err := db.Save(inv).Error; err != nil {
		return nil, ErrInternal(err)
	}
	return inv, nil
}

// MarkAllInvitationsRead flips every unread invitation of the user and
// returns how many changed.
func MarkAllInvitationsRead(db *gorm.DB, userID uint) (int64, *Error) {
	res := db.Model(&models.BookingInvitation{}).
		Where("invitee_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, ErrInternal(res.Error)
	}
	return res.RowsAffected, nil
}

// CountNotifications returns the unread and pending counters. The two flags
// are independent: reading an invitation does not answer it.
func CountNotifications(db *gorm.DB, userID uint) (unread int64, pending int64, svcErr *Error) {
	if err := db.Model(&models.BookingInvitation{}).
		Where("invitee_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return 0, 0, ErrInternal(err)
	}
	if err := db.Model(&models.BookingInvitation{}).
		Where("invitee_id = ? AND status = ?", userID, models.InvitationStatusPending).
		Count(&pending).Error; err != nil {
		return 0, 0, ErrInternal(err)
	}
	return unread, pending, nil
}

// ListNotifications returns the user's invitation feed, newest first, with
// optional status and read filters.
func ListNotifications(db *gorm.DB, userID uint, status string, isRead *bool) ([]NotificationRow, *Error) {
	q := db.Model(&models.BookingInvitation{}).
		Select(`booking_invitations.*,
			users.full_name AS inviter_name, users.email AS inviter_email,
			rooms.id AS room_id, rooms.name AS room_name,
			bookings.booking_date, bookings.start_time, bookings.end_time`).
		Joins("JOIN bookings ON bookings.id = booking_invitations.booking_id").
		Joins("JOIN users ON users.id = booking_invitations.inviter_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("booking_invitations.invitee_id = ?", userID)

	if status != "" {
		q = q.Where("booking_invitations.status = ?", status)
	}
	if isRead != nil {
		q = q.Where("booking_invitations.is_read = ?", *isRead)
	}

	rows := make([]NotificationRow, 0)
	if err := q.Order("booking_invitations.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, ErrInternal(err)
	}
	return rows, nil
}
