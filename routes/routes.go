package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SabinGhost19/RoomBooking/controllers"
	"github.com/SabinGhost19/RoomBooking/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", middleware.RateLimitLogin(), controllers.Login)
			auth.POST("/google/login", middleware.RateLimitLogin(), controllers.GoogleLoginHandler)
		}

		users := api.Group("/users")
		users.Use(middleware.AuthJWT())
		{
			users.GET("/me", controllers.Me)
			users.PUT("/me", controllers.UpdateMe)
			users.DELETE("/me", controllers.DeleteMe)
			users.GET("", controllers.ListUsers)
			users.GET("/:id", controllers.GetUserByID)
			users.DELETE("/:id", middleware.RequireManager(), controllers.DeleteUserByID)
		}

		rooms := api.Group("/rooms")
		{
			// browsing the catalogue works without an account
			rooms.GET("", controllers.ListRooms)

			rooms.GET("/count", middleware.AuthJWT(), controllers.CountRooms)
			rooms.GET("/:id", middleware.AuthJWT(), controllers.GetRoomDetail)

			rooms.POST("", middleware.AuthJWT(), middleware.RequireManager(), controllers.CreateRoom)
			rooms.PUT("/:id", middleware.AuthJWT(), middleware.RequireManager(), controllers.UpdateRoom)
			rooms.DELETE("/:id", middleware.AuthJWT(), middleware.RequireManager(), controllers.DeleteRoom)
			rooms.POST("/:id/image", middleware.AuthJWT(), middleware.RequireManager(), controllers.UploadRoomImage)
		}

		bookings := api.Group("/bookings")
		bookings.Use(middleware.AuthJWT())
		{
			bookings.POST("/check-availability", controllers.CheckAvailability)
			bookings.POST("", middleware.RateLimitBookingCreate(), controllers.CreateBooking)
			bookings.GET("/my", controllers.GetMyBookings)
			bookings.GET("/room/:id", controllers.GetRoomBookings)
			bookings.GET("/pending", middleware.RequireManager(), controllers.GetPendingBookings)
			bookings.GET("/export", middleware.RequireManager(), controllers.ExportBookings)
			bookings.GET("/:id", controllers.GetBookingDetail)
			bookings.PUT("/:id", middleware.CheckBookingOrganizer(), controllers.UpdateBooking)
			bookings.POST("/:id/cancel", middleware.CheckBookingOrganizer(), controllers.CancelBooking)
			bookings.DELETE("/:id", middleware.CheckBookingOrganizer(), controllers.DeleteBooking)
			bookings.POST("/:id/approve", middleware.RequireManager(), controllers.ApproveBooking)
			bookings.POST("/:id/reject", middleware.RequireManager(), controllers.RejectBooking)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthJWT())
		{
			notifications.GET("", controllers.GetNotifications)
			notifications.GET("/count", controllers.GetNotificationCount)
			notifications.POST("/mark-all-read", controllers.MarkAllNotificationsRead)
			notifications.POST("/:id/accept", controllers.AcceptInvitation)
			notifications.POST("/:id/reject", controllers.RejectInvitation)
			notifications.POST("/:id/mark-read", controllers.MarkNotificationRead)
		}
	}
}
