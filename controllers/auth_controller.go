package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/idtoken"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
	"github.com/SabinGhost19/RoomBooking/utils"
)

type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	FullName string `json:"full_name" binding:"required,min=1"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

func roleOf(u models.User) string {
	if u.IsManager {
		return "manager"
	}
	return "employee"
}

func issueToken(u models.User) (string, error) {
	return utils.GenerateToken(strconv.FormatUint(uint64(u.ID), 10), roleOf(u))
}

func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		respondError(c, services.ErrConflict("email already registered"))
		return
	}
	config.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		respondError(c, services.ErrConflict("username already taken"))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	user := models.User{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: hash,
		IsActive: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(c, services.ErrUnauthorized("invalid email or password"))
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		respondError(c, services.ErrUnauthorized("invalid email or password"))
		return
	}
	if !user.IsActive {
		respondError(c, services.ErrUnauthorized("account is deactivated"))
		return
	}

	token, err := issueToken(user)
	if err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// GoogleLoginHandler verifies a Google ID token, finds or creates the
// matching account and issues a regular JWT for it.
func GoogleLoginHandler(c *gin.Context) {
	var req GoogleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		respondError(c, services.ErrUnauthorized("invalid Google token"))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		respondError(c, services.ErrUnauthorized("Google token has no email claim"))
		return
	}
	if name == "" {
		name = email
	}

	var user models.User
	err = config.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		// first sign-in, provision an account with an unguessable password
		raw, rndErr := utils.RandomPassword()
		if rndErr != nil {
			respondError(c, services.ErrInternal(rndErr))
			return
		}
		hash, hashErr := utils.HashPassword(raw)
		if hashErr != nil {
			respondError(c, services.ErrInternal(hashErr))
			return
		}

		user = models.User{
			Email:    email,
			Username: googleUsername(email),
			FullName: name,
			Password: hash,
			IsActive: true,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			respondError(c, services.ErrInternal(err))
			return
		}
		log.Info().Str("email", email).Msg("created account from Google sign-in")
	}

	if !user.IsActive {
		respondError(c, services.ErrUnauthorized("account is deactivated"))
		return
	}

	token, err := issueToken(user)
	if err != nil {
		respondError(c, services.ErrInternal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// googleUsername derives a free username from the email local part.
func googleUsername(email string) string {
	base := strings.SplitN(email, "@", 2)[0]
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 1; ; i++ {
		var count int64
		config.DB.Model(&models.User{}).Where("username = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func Me(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.User)
	c.JSON(http.StatusOK, gin.H{"user": u})
}
