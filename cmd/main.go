package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/metrics"
	"github.com/SabinGhost19/RoomBooking/middleware"
	"github.com/SabinGhost19/RoomBooking/routes"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using process environment")
	}

	config.ConnectDB()
	metrics.Register()

	// gin.New instead of gin.Default: the request logger below replaces
	// gin's own logging middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	allowed := strings.Split(origins, ",")

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, o := range allowed {
				if origin == strings.TrimSpace(o) {
					return true
				}
			}
			return false
		},
		AllowMethods:           []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:           []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:          []string{"Content-Length", "Content-Disposition"},
		AllowCredentials:       true,
		MaxAge:                 12 * time.Hour,
		AllowWildcard:          true,
		AllowBrowserExtensions: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Room booking server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("failed to set trusted proxies")
	}

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
