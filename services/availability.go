package services

import (
	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/models"
)

// Overlaps reports whether the half-open slots [aStart, aEnd) and
// [bStart, bEnd) intersect. Slots that only touch at a boundary do not
// overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// IsRoomAvailable checks whether the room has no non-cancelled booking
// overlapping the slot on the given date. excludeBookingID skips one booking
// (reschedule checks); pass 0 to scan everything. Read-only.
func IsRoomAvailable(db *gorm.DB, roomID uint, date, start, end string, excludeBookingID uint) (bool, error) {
	q := db.Model(&models.Booking{}).
		Where("room_id = ? AND booking_date = ? AND status <> ?", roomID, date, models.BookingStatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// IsUserAvailable checks whether the user is free in the slot, counting
// bookings they organize and bookings they participate in.
func IsUserAvailable(db *gorm.DB, userID uint, date, start, end string, excludeBookingID uint) (bool, error) {
	q := db.Model(&models.Booking{}).
		Where("booking_date = ? AND status <> ?", date, models.BookingStatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start).
		Where("user_id = ? OR id IN (SELECT booking_id FROM booking_participants WHERE user_id = ?)", userID, userID)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
