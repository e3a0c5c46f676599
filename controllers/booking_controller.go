package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
	"github.com/SabinGhost19/RoomBooking/utils"
)

type AvailabilityCheckReq struct {
	RoomID      uint   `json:"room_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

type RejectBookingReq struct {
	Reason string `json:"reason"`
}

// sweepElapsed promotes finished upcoming bookings to completed before any
// booking read, standing in for a background scheduler.
func sweepElapsed() {
	if _, err := services.CompleteElapsed(config.DB, time.Now()); err != nil {
		log.Error().Err(err).Msg("completing elapsed bookings failed")
	}
}

// CheckAvailability runs the pure conflict check, no side effects.
func CheckAvailability(c *gin.Context) {
	var req AvailabilityCheckReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	date, err := utils.NormalizeDate(req.BookingDate)
	if err != nil {
		respondError(c, services.ErrValidation(err.Error()))
		return
	}
	start, end, err := utils.ValidateSlot(req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, services.ErrValidation(err.Error()))
		return
	}

	var room models.Room
	if err := config.DB.First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("room not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	available, err := services.IsRoomAvailable(config.DB, room.ID, date, start, end, 0)
	if err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

func CreateBooking(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req services.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	booking, svcErr := services.CreateBooking(config.DB, u, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "booking created successfully",
		"data":    booking,
	})
}

// GetMyBookings lists bookings the caller organizes or participates in.
func GetMyBookings(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	sweepElapsed()

	bookings, svcErr := services.ListUserBookings(config.DB, u.ID,
		c.Query("start_date"), c.Query("end_date"), c.Query("status"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  bookings,
		"total": len(bookings),
	})
}

func GetRoomBookings(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid room id"))
		return
	}
	sweepElapsed()

	bookings, svcErr := services.ListRoomBookings(config.DB, uint(id),
		c.Query("start_date"), c.Query("end_date"), c.Query("status"))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  bookings,
		"total": len(bookings),
	})
}

// GetBookingDetail shows one booking to its organizer, a participant or a
// manager.
func GetBookingDetail(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid booking id"))
		return
	}

	booking, svcErr := services.GetBooking(config.DB, uint(id))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	allowed := booking.UserID == u.ID || u.IsManager
	if !allowed {
		for _, p := range booking.Participants {
			if p.ID == u.ID {
				allowed = true
				break
			}
		}
	}
	if !allowed {
		respondError(c, services.ErrForbidden("you do not have access to this booking"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": booking})
}

func UpdateBooking(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	booking := c.MustGet(middleware.CtxBooking).(models.Booking)

	var req services.UpdateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, svcErr := services.UpdateBooking(config.DB, booking.ID, u, req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "booking updated successfully",
		"data":    updated,
	})
}

func CancelBooking(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	booking := c.MustGet(middleware.CtxBooking).(models.Booking)

	cancelled, svcErr := services.CancelBooking(config.DB, booking.ID, u)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "booking cancelled successfully",
		"data":    cancelled,
	})
}

func DeleteBooking(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	booking := c.MustGet(middleware.CtxBooking).(models.Booking)

	if svcErr := services.DeleteBooking(config.DB, booking.ID, u); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "booking deleted successfully"})
}
