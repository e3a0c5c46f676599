package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
)

// CheckBookingOrganizer loads the booking into the context and verifies the
// caller organizes it. Write operations on a booking go through this.
func CheckBookingOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := c.MustGet(CtxUser).(models.User)

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"kind":    services.KindValidation,
				"message": "invalid booking id",
			})
			return
		}

		var booking models.Booking
		if err := config.DB.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"kind":    services.KindNotFound,
					"message": "booking not found",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"kind":    services.KindInternal,
				"message": "internal server error",
			})
			return
		}

		if booking.UserID != u.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"kind":    services.KindForbidden,
				"message": "only the organizer can modify this booking",
			})
			return
		}

		c.Set(CtxBooking, booking)
		c.Next()
	}
}
