package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SabinGhost19/RoomBooking/models"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// MaxOpenConns(1) keeps the pool on the single connection that owns the
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string, manager bool) models.User {
	t.Helper()

	u := models.User{
		Email:     fmt.Sprintf("%s@example.com", name),
		Username:  name,
		FullName:  name,
		Password:  "not-a-real-hash",
		IsActive:  true,
		IsManager: manager,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createTestRoom(t *testing.T, db *gorm.DB, name string, capacity int) models.Room {
	t.Helper()

	r := models.Room{
		Name:        name,
		Capacity:    capacity,
		Price:       50,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func mustCreateBooking(t *testing.T, db *gorm.DB, organizer models.User, in CreateBookingInput) *models.Booking {
	t.Helper()

	booking, svcErr := CreateBooking(db, organizer, in)
	require.Nil(t, svcErr)
	return booking
}
