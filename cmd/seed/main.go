package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/models"
	"github.com/SabinGhost19/RoomBooking/utils"
)

func strPtr(s string) *string { return &s }

func amenities(items ...string) datatypes.JSON {
	return mustJSON(items)
}

func coords(x, y float64) datatypes.JSON {
	return mustJSON(map[string]float64{"x": x, "y": y})
}

func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode seed data")
	}
	return datatypes.JSON(b)
}

var sampleRooms = []models.Room{
	{
		Name:        "Executive Meeting Room",
		Description: strPtr("Perfect for team meetings and presentations. Equipped with state-of-the-art technology."),
		Capacity:    12,
		Price:       75.0,
		Amenities:   amenities("Projector", "Whiteboard", "Video Conference", "Coffee Machine", "WiFi"),
		Image:       strPtr("https://images.unsplash.com/photo-1497366216548-37526070297c?w=800"),
		SvgID:       strPtr("room-1"),
		Coordinates: coords(200, 150),
		IsAvailable: true,
	},
	{
		Name:        "Creative Studio",
		Description: strPtr("Inspiring space for creative brainstorming and collaborative work."),
		Capacity:    8,
		Price:       60.0,
		Amenities:   amenities("Natural Light", "Whiteboard", "Smart TV", "Plants", "WiFi"),
		Image:       strPtr("https://images.unsplash.com/photo-1497366754035-f200968a6e72?w=800"),
		SvgID:       strPtr("room-2"),
		Coordinates: coords(400, 150),
		IsAvailable: true,
	},
	{
		Name:        "Small Conference Room",
		Description: strPtr("Cozy room ideal for small team discussions and one-on-one meetings."),
		Capacity:    4,
		Price:       35.0,
		Amenities:   amenities("TV Screen", "Whiteboard", "WiFi"),
		Image:       strPtr("https://images.unsplash.com/photo-1497366811353-6870744d04b2?w=800"),
		SvgID:       strPtr("room-3"),
		Coordinates: coords(600, 150),
		IsAvailable: true,
	},
	{
		Name:        "Training Room",
		Description: strPtr("Large training room with flexible seating arrangements and excellent AV equipment."),
		Capacity:    20,
		Price:       100.0,
		Amenities:   amenities("Projector", "Sound System", "Multiple Whiteboards", "Video Conference", "WiFi"),
		Image:       strPtr("https://images.unsplash.com/photo-1497366858526-0766cadbe8fa?w=800"),
		SvgID:       strPtr("room-4"),
		Coordinates: coords(200, 350),
		IsAvailable: true,
	},
	{
		Name:        "Focus Pod",
		Description: strPtr("Private quiet space for individual focused work or phone calls."),
		Capacity:    1,
		Price:       20.0,
		Amenities:   amenities("Desk", "Ergonomic Chair", "Power Outlets", "WiFi"),
		Image:       strPtr("https://images.unsplash.com/photo-1497366412874-3415097a27e7?w=800"),
		SvgID:       strPtr("room-5"),
		Coordinates: coords(400, 350),
		IsAvailable: true,
	},
	{
		Name:        "Board Room",
		Description: strPtr("Premium board room for executive meetings and important presentations."),
		Capacity:    16,
		Price:       120.0,
		Amenities:   amenities("Large Conference Table", "Premium Chairs", "Dual Screens", "Video Conference", "Catering Service", "WiFi"),
		Image:       strPtr("https://images.unsplash.com/photo-1497215728101-856f4ea42174?w=800"),
		SvgID:       strPtr("room-6"),
		Coordinates: coords(600, 350),
		IsAvailable: true,
	},
}

func seedRooms(db *gorm.DB) {
	for i := range sampleRooms {
		room := sampleRooms[i]

		var count int64
		db.Model(&models.Room{}).Where("name = ?", room.Name).Count(&count)
		if count > 0 {
			log.Info().Str("room", room.Name).Msg("room already exists, skipping")
			continue
		}

		if err := db.Create(&room).Error; err != nil {
			log.Error().Err(err).Str("room", room.Name).Msg("failed to create room")
			continue
		}
		log.Info().Str("room", room.Name).Uint("id", room.ID).Msg("created room")
	}
}

func seedUser(db *gorm.DB, email, username, fullName, password string, isManager bool) {
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Info().Str("email", email).Msg("user already exists, skipping")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to hash password")
		return
	}

	user := models.User{
		Email:     email,
		Username:  username,
		FullName:  fullName,
		Password:  hash,
		IsActive:  true,
		IsManager: isManager,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return
	}
	log.Info().Str("email", email).Bool("manager", isManager).Msg("created user")
}

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using process environment")
	}

	config.ConnectDB()

	seedRooms(config.DB)
	seedUser(config.DB, "manager@example.com", "manager", "Margaret Hall", "manager123", true)
	seedUser(config.DB, "employee@example.com", "employee", "Evan Brooks", "employee123", false)

	log.Info().Msg("seeding finished")
}
