package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/services"
	"github.com/SabinGhost19/RoomBooking/utils"
)

const (
	CtxUser    = "user"
	CtxBooking = "bookingObj"
)

// AuthJWT checks Authorization: Bearer <token>, validates the JWT, loads the
// user and injects it into the context.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"kind":    services.KindUnauthorized,
				"message": "missing or invalid Authorization header",
			})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"kind":    services.KindUnauthorized,
				"message": "invalid token",
			})
			return
		}

		// UserID in claims is a string, parse it to look up the primary key
		uid, err := strconv.ParseUint(claims.UserID, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"kind":    services.KindUnauthorized,
				"message": "invalid subject",
			})
			return
		}

		var user models.User
		if err := config.DB.First(&user, uid).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"kind":    services.KindUnauthorized,
				"message": "user not found",
			})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"kind":    services.KindUnauthorized,
				"message": "account is deactivated",
			})
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequireManager blocks routes reserved for managers.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUser)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"kind":    services.KindUnauthorized,
				"message": "unauthorized",
			})
			return
		}
		u := v.(models.User)
		if !u.IsManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"kind":    services.KindForbidden,
				"message": "manager role required",
			})
			return
		}
		c.Next()
	}
}
