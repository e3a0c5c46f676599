package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
)

type RejectInvitationReq struct {
	ResponseMessage string `json:"response_message"`
}

// GetNotifications returns the caller's invitation feed, newest first, with
// optional status and is_read filters.
func GetNotifications(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var isRead *bool
	if v := c.Query("is_read"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			isRead = &b
		}
	}

	rows, svcErr := services.ListNotifications(config.DB, u.ID, c.Query("status"), isRead)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"total": len(rows),
	})
}

func GetNotificationCount(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	unread, pending, svcErr := services.CountNotifications(config.DB, u.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread_count":  unread,
		"pending_count": pending,
	})
}

func AcceptInvitation(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid invitation id"))
		return
	}

	inv, svcErr := services.RespondToInvitation(config.DB, uint(id), u, true, "")
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "invitation accepted successfully",
		"invitation_id": inv.ID,
	})
}

func RejectInvitation(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid invitation id"))
		return
	}

	// body is optional, the message may be omitted
	var req RejectInvitationReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	inv, svcErr := services.RespondToInvitation(config.DB, uint(id), u, false, req.ResponseMessage)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "invitation rejected successfully",
		"invitation_id": inv.ID,
	})
}

func MarkNotificationRead(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid invitation id"))
		return
	}

	if _, svcErr := services.MarkInvitationRead(config.DB, uint(id), u); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	count, svcErr := services.MarkAllInvitationsRead(config.DB, u.ID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("marked %d notifications as read", count),
		"count":   count,
	})
}
