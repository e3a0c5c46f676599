package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
)

// GetPendingBookings pages the manager's approval queue, oldest first.
func GetPendingBookings(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, total, svcErr := services.ListPendingBookings(config.DB, skip, limit)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func ApproveBooking(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid booking id"))
		return
	}

	booking, svcErr := services.ApproveBooking(config.DB, uint(id), u)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "booking approved successfully",
		"data":    booking,
	})
}

func RejectBooking(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid booking id"))
		return
	}

	// body is optional, the reason may be omitted
	var req RejectBookingReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	booking, svcErr := services.RejectBooking(config.DB, uint(id), u, req.Reason)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "booking rejected successfully",
		"data":    booking,
	})
}
