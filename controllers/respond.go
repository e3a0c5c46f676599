package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/SabinGhost19/RoomBooking/services"
)

// respondError translates a service error kind into its HTTP status and
// writes the {"kind", "message"} body. Internal causes get logged, never
// returned.
func respondError(c *gin.Context, err *services.Error) {
	status := http.StatusInternalServerError
	switch err.Kind {
	case services.KindValidation, services.KindInvalidState:
		status = http.StatusBadRequest
	case services.KindUnauthorized:
		status = http.StatusUnauthorized
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindRateLimited:
		status = http.StatusTooManyRequests
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err.Unwrap()).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, err)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, services.ErrValidation(err.Error()))
}
