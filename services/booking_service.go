package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SabinGhost19/RoomBooking/metrics"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/utils"
)

type CreateBookingInput struct {
	RoomID         uint   `json:"room_id" binding:"required"`
	BookingDate    string `json:"booking_date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	ParticipantIDs []uint `json:"participant_ids"`
}

type UpdateBookingInput struct {
	BookingDate    *string `json:"booking_date"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Status         *string `json:"status"`
	ParticipantIDs *[]uint `json:"participant_ids"`
}

// CreateBooking validates the request, re-checks every availability rule
// inside one transaction and inserts the booking with its participants and
// their invitations. The new booking holds the slot immediately (status
// upcoming) while awaiting a manager decision (approval_status pending).
func CreateBooking(db *gorm.DB, organizer models.User, in CreateBookingInput) (*models.Booking, *Error) {
	date, err := utils.NormalizeDate(in.BookingDate)
	if err != nil {
		return nil, ErrValidation(err.Error())
	}
	start, end, err := utils.ValidateSlot(in.StartTime, in.EndTime)
	if err != nil {
		return nil, ErrValidation(err.Error())
	}

	seen := make(map[uint]bool, len(in.ParticipantIDs))
	for _, pid := range in.ParticipantIDs {
		if pid == organizer.ID {
			return nil, ErrValidation("the organizer cannot be added as a participant")
		}
		if seen[pid] {
			return nil, ErrValidation("duplicate participant IDs are not allowed")
		}
		seen[pid] = true
	}

	var booking models.Booking
	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Serialize concurrent creations on the same room.
		roomQuery := tx
		if tx.Dialector.Name() == "postgres" {
			roomQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var room models.Room
		if err := roomQuery.First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("room not found")
			}
			return err
		}
		if !room.IsAvailable {
			return ErrValidation("room is not available for booking")
		}

		if 1+len(in.ParticipantIDs) > room.Capacity {
			return ErrValidation(fmt.Sprintf("room capacity is %d, cannot fit %d people", room.Capacity, 1+len(in.ParticipantIDs)))
		}

		free, err := IsRoomAvailable(tx, room.ID, date, start, end, 0)
		if err != nil {
			return err
		}
		if !free {
			metrics.IncBookingConflict()
			return ErrConflict("room is already booked for this time slot")
		}

		free, err = IsUserAvailable(tx, organizer.ID, date, start, end, 0)
		if err != nil {
			return err
		}
		if !free {
			metrics.IncBookingConflict()
			return ErrConflict("you already have a booking in this time slot")
		}

		var participants []models.User
		for _, pid := range in.ParticipantIDs {
			var p models.User
			if err := tx.First(&p, pid).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrValidation(fmt.Sprintf("participant %d not found", pid))
				}
				return err
			}
			free, err := IsUserAvailable(tx, pid, date, start, end, 0)
			if err != nil {
				return err
			}
			if !free {
				metrics.IncBookingConflict()
				return ErrConflict(fmt.Sprintf("%s already has a booking in this time slot", p.FullName))
			}
			participants = append(participants, p)
		}

		booking = models.Booking{
			RoomID:         room.ID,
			UserID:         organizer.ID,
			BookingDate:    date,
			StartTime:      start,
			EndTime:        end,
			Status:         models.BookingStatusUpcoming,
			ApprovalStatus: models.ApprovalStatusPending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		if len(participants) > 0 {
			if err := tx.Model(&booking).Association("Participants").Append(&participants); err != nil {
				return err
			}
			for _, p := range participants {
				inv := models.BookingInvitation{
					BookingID: booking.ID,
					InviterID: organizer.ID,
					InviteeID: p.ID,
					Status:    models.InvitationStatusPending,
				}
				if err := tx.Create(&inv).Error; err != nil {
					return err
				}
			}
		}

		return tx.Preload("Room").Preload("Participants").First(&booking, booking.ID).Error
	})
	if txErr != nil {
		var svcErr *Error
		if errors.As(txErr, &svcErr) {
			return nil, svcErr
		}
		return nil, ErrInternal(txErr)
	}

	metrics.IncBookingCreated()
	return &booking, nil
}

// GetBooking loads a booking with its room and participants.
func GetBooking(db *gorm.DB, bookingID uint) (*models.Booking, *Error) {
	var booking models.Booking
	if err := db.Preload("Room").Preload("User").Preload("Participants").
		First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("booking not found")
		}
		return nil, ErrInternal(err)
	}
	return &booking, nil
}

// ListUserBookings returns bookings where the user is organizer or
// participant, sorted by date then start time.
func ListUserBookings(db *gorm.DB, userID uint, startDate, endDate string, status string) ([]models.Booking, *Error) {
	q := db.Model(&models.Booking{}).
		Where("user_id = ? OR id IN (SELECT booking_id FROM booking_participants WHERE user_id = ?)", userID, userID)
	q = applyBookingFilters(q, startDate, endDate, status)

	bookings := make([]models.Booking, 0)
	if err := q.Preload("Room").Preload("Participants").
		Order("booking_date, start_time").Find(&bookings).Error; err != nil {
		return nil, ErrInternal(err)
	}
	return bookings, nil
}

// ListRoomBookings returns a room's bookings, sorted by date then start time.
func ListRoomBookings(db *gorm.DB, roomID uint, startDate, endDate string, status string) ([]models.Booking, *Error) {
	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("room not found")
		}
		return nil, ErrInternal(err)
	}

	q := db.Model(&models.Booking{}).Where("room_id = ?", roomID)
	q = applyBookingFilters(q, startDate, endDate, status)

	bookings := make([]models.Booking, 0)
	if err := q.Preload("User").Preload("Participants").
		Order("booking_date, start_time").Find(&bookings).Error; err != nil {
		return nil, ErrInternal(err)
	}
	return bookings, nil
}

func applyBookingFilters(q *gorm.DB, startDate, endDate, status string) *gorm.DB {
	if startDate != "" {
		if d, err := utils.NormalizeDate(startDate); err == nil {
			q = q.Where("booking_date >= ?", d)
		}
	}
	if endDate != "" {
		if d, err := utils.NormalizeDate(endDate); err == nil {
			q = q.Where("booking_date <= ?", d)
		}
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return q
}

// UpdateBooking reschedules a booking and/or replaces its participant set.
// Only the organizer may update; time changes re-run the conflict checks
// excluding the booking itself.
func UpdateBooking(db *gorm.DB, bookingID uint, user models.User, in UpdateBookingInput) (*models.Booking, *Error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("booking not found")
		}
		return nil, ErrInternal(err)
	}
	if booking.UserID != user.ID {
		return nil, ErrForbidden("only the organizer can update this booking")
	}

	newDate := booking.BookingDate
	newStart := booking.StartTime
	newEnd := booking.EndTime

	if in.BookingDate != nil {
		d, err := utils.NormalizeDate(*in.BookingDate)
		if err != nil {
			return nil, ErrValidation(err.Error())
		}
		newDate = d
	}
	if in.StartTime != nil {
		newStart = *in.StartTime
	}
	if in.EndTime != nil {
		newEnd = *in.EndTime
	}
	if in.StartTime != nil || in.EndTime != nil {
		s, e, err := utils.ValidateSlot(newStart, newEnd)
		if err != nil {
			return nil, ErrValidation(err.Error())
		}
		newStart, newEnd = s, e
	}

	if in.Status != nil {
		switch models.BookingStatus(*in.Status) {
		case models.BookingStatusUpcoming, models.BookingStatusCompleted, models.BookingStatusCancelled:
		default:
			return nil, ErrValidation("status must be upcoming, completed or cancelled")
		}
	}

	slotChanged := newDate != booking.BookingDate || newStart != booking.StartTime || newEnd != booking.EndTime

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if slotChanged {
			free, err := IsRoomAvailable(tx, booking.RoomID, newDate, newStart, newEnd, booking.ID)
			if err != nil {
				return err
			}
			if !free {
				metrics.IncBookingConflict()
				return ErrConflict("room is already booked for this time slot")
			}
		}

		if in.ParticipantIDs != nil {
			var room models.Room
			if err := tx.First(&room, booking.RoomID).Error; err != nil {
				return err
			}
			if 1+len(*in.ParticipantIDs) > room.Capacity {
				return ErrValidation(fmt.Sprintf("room capacity is %d, cannot fit %d people", room.Capacity, 1+len(*in.ParticipantIDs)))
			}

			var participants []models.User
			for _, pid := range *in.ParticipantIDs {
				if pid == booking.UserID {
					return ErrValidation("the organizer cannot be added as a participant")
				}
				var p models.User
				if err := tx.First(&p, pid).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrValidation(fmt.Sprintf("participant %d not found", pid))
					}
					return err
				}
				free, err := IsUserAvailable(tx, pid, newDate, newStart, newEnd, booking.ID)
				if err != nil {
					return err
				}
				if !free {
					metrics.IncBookingConflict()
					return ErrConflict(fmt.Sprintf("%s already has a booking in this time slot", p.FullName))
				}
				participants = append(participants, p)
			}

			if err := tx.Model(&booking).Association("Participants").Replace(&participants); err != nil {
				return err
			}
		}

		booking.BookingDate = newDate
		booking.StartTime = newStart
		booking.EndTime = newEnd
		if in.Status != nil {
			booking.Status = models.BookingStatus(*in.Status)
		}
		return tx.Save(&booking).Error
	})
	if txErr != nil {
		var svcErr *Error
		if errors.As(txErr, &svcErr) {
			return nil, svcErr
		}
		return nil, ErrInternal(txErr)
	}

	return GetBooking(db, booking.ID)
}

// CancelBooking moves an upcoming booking to cancelled, freeing its slot.
func CancelBooking(db *gorm.DB, bookingID uint, user models.User) (*models.Booking, *Error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("booking not found")
		}
		return nil, ErrInternal(err)
	}
	if booking.UserID != user.ID {
		return nil, ErrForbidden("only the organizer can cancel this booking")
	}
	if booking.Status != models.BookingStatusUpcoming {
		return nil, ErrInvalidState(fmt.Sprintf("cannot cancel a %s booking", booking.Status))
	}

	booking.Status = models.BookingStatusCancelled
	if err := db.Save(&booking).Error; err != nil {
		return nil, ErrInternal(err)
	}

	metrics.IncBookingCancelled()
	return &booking, nil
}

// DeleteBooking removes a booking with its participant rows and invitations.
func DeleteBooking(db *gorm.DB, bookingID uint, user models.User) *Error {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("booking not found")
		}
		return ErrInternal(err)
	}
	if booking.UserID != user.ID {
		return ErrForbidden("only the organizer can delete this booking")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.BookingInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&booking).Association("Participants").Clear(); err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if txErr != nil {
		return ErrInternal(txErr)
	}
	return nil
}

// CompleteElapsed sweeps upcoming bookings whose slot has ended to
// completed. Called before list reads instead of a background worker.
func CompleteElapsed(db *gorm.DB, now time.Time) (int64, error) {
	today := now.Format(utils.DateLayout)
	clock := now.Format(utils.ClockLayout)

	res := db.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusUpcoming).
		Where("booking_date < ? OR (booking_date = ? AND end_time <= ?)", today, today, clock).
		Update("status", models.BookingStatusCompleted)
	return res.RowsAffected, res.Error
}
