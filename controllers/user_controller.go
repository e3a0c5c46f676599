package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
	"github.com/SabinGhost19/RoomBooking/utils"
)

type UserUpdateReq struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	FullName *string `json:"full_name" binding:"omitempty,min=1"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// ListUsers backs the participant picker: active accounts, searchable by
// name, email or username.
func ListUsers(c *gin.Context) {
	query := config.DB.Model(&models.User{}).Where("is_active = ?", true)

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(username) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var total int64
	query.Count(&total)

	users := make([]models.User, 0)
	if err := query.Offset(skip).Limit(limit).Order("full_name").Find(&users).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  users,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

func UpdateMe(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	var req UserUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if req.Email != nil && *req.Email != u.Email {
		var count int64
		config.DB.Model(&models.User{}).Where("email = ? AND id <> ?", *req.Email, u.ID).Count(&count)
		if count > 0 {
			respondError(c, services.ErrConflict("email already registered"))
			return
		}
		u.Email = *req.Email
	}
	if req.Username != nil && *req.Username != u.Username {
		var count int64
		config.DB.Model(&models.User{}).Where("username = ? AND id <> ?", *req.Username, u.ID).Count(&count)
		if count > 0 {
			respondError(c, services.ErrConflict("username already taken"))
			return
		}
		u.Username = *req.Username
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			respondError(c, services.ErrInternal(err))
			return
		}
		u.Password = hash
	}

	if err := config.DB.Save(&u).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

func DeleteMe(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	if err := deleteUserCascade(u.ID); err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user account deleted successfully"})
}

func GetUserByID(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid user id"))
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("user not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	// users only see their own record unless they manage rooms
	if user.ID != u.ID && !u.IsManager {
		respondError(c, services.ErrForbidden("not enough privileges"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUserByID removes an account (manager only).
func DeleteUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, services.ErrValidation("invalid user id"))
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, services.ErrNotFound("user not found"))
			return
		}
		respondError(c, services.ErrInternal(err))
		return
	}

	if err := deleteUserCascade(user.ID); err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// deleteUserCascade removes the account with everything hanging off it:
// organized bookings (plus their participant rows and invitations), the
// user's own participant rows and invitations, and manager references.
func deleteUserCascade(userID uint) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inviter_id = ? OR invitee_id = ?", userID, userID).
			Delete(&models.BookingInvitation{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM booking_participants WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM booking_invitations WHERE booking_id IN (SELECT id FROM bookings WHERE user_id = ?)", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM booking_participants WHERE booking_id IN (SELECT id FROM bookings WHERE user_id = ?)", userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Booking{}).Where("approved_by_id = ?", userID).
			Update("approved_by_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
