package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/utils"
)

// newTestServer points config.DB at a fresh in-memory database and wires the
// API surface like routes.SetupRoutes, minus the rate limiters.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.BookingInvitation{},
	))
	config.DB = db

	r := gin.New()
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)

	users := api.Group("/users")
	users.Use(middleware.AuthJWT())
	users.GET("/me", Me)
	users.PUT("/me", UpdateMe)
	users.DELETE("/me", DeleteMe)
	users.GET("", ListUsers)
	users.GET("/:id", GetUserByID)
	users.DELETE("/:id", middleware.RequireManager(), DeleteUserByID)

	rooms := api.Group("/rooms")
	rooms.GET("", ListRooms)
	rooms.GET("/count", middleware.AuthJWT(), CountRooms)
	rooms.GET("/:id", middleware.AuthJWT(), GetRoomDetail)
	rooms.POST("", middleware.AuthJWT(), middleware.RequireManager(), CreateRoom)
	rooms.PUT("/:id", middleware.AuthJWT(), middleware.RequireManager(), UpdateRoom)
	rooms.DELETE("/:id", middleware.AuthJWT(), middleware.RequireManager(), DeleteRoom)

	bookings := api.Group("/bookings")
	bookings.Use(middleware.AuthJWT())
	bookings.POST("/check-availability", CheckAvailability)
	bookings.POST("", CreateBooking)
	bookings.GET("/my", GetMyBookings)
	bookings.GET("/room/:id", GetRoomBookings)
	bookings.GET("/pending", middleware.RequireManager(), GetPendingBookings)
	bookings.GET("/export", middleware.RequireManager(), ExportBookings)
	bookings.GET("/:id", GetBookingDetail)
	bookings.PUT("/:id", middleware.CheckBookingOrganizer(), UpdateBooking)
	bookings.POST("/:id/cancel", middleware.CheckBookingOrganizer(), CancelBooking)
	bookings.DELETE("/:id", middleware.CheckBookingOrganizer(), DeleteBooking)
	bookings.POST("/:id/approve", middleware.RequireManager(), ApproveBooking)
	bookings.POST("/:id/reject", middleware.RequireManager(), RejectBooking)

	notifications := api.Group("/notifications")
	notifications.Use(middleware.AuthJWT())
	notifications.GET("", GetNotifications)
	notifications.GET("/count", GetNotificationCount)
	notifications.POST("/mark-all-read", MarkAllNotificationsRead)
	notifications.POST("/:id/accept", AcceptInvitation)
	notifications.POST("/:id/reject", RejectInvitation)
	notifications.POST("/:id/mark-read", MarkNotificationRead)

	return r
}

func seedUser(t *testing.T, name string, manager bool) models.User {
	t.Helper()

	u := models.User{
		Email:     fmt.Sprintf("%s@example.com", name),
		Username:  name,
		FullName:  name,
		Password:  "not-a-real-hash",
		IsActive:  true,
		IsManager: manager,
	}
	require.NoError(t, config.DB.Create(&u).Error)
	return u
}

func seedRoom(t *testing.T, name string, capacity int, price float64) models.Room {
	t.Helper()

	r := models.Room{Name: name, Capacity: capacity, Price: price, IsAvailable: true}
	require.NoError(t, config.DB.Create(&r).Error)
	return r
}

func bearer(t *testing.T, u models.User) string {
	t.Helper()

	role := "employee"
	if u.IsManager {
		role = "manager"
	}
	token, err := utils.GenerateToken(strconv.FormatUint(uint64(u.ID), 10), role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
