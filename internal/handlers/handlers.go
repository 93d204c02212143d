package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "vokzal/internal/errors"
	"vokzal/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// respondError maps domain errors to HTTP statuses. Anything unrecognized is
// an internal error and gets logged with its full chain.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSeat):
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidSeat.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.ErrNotFound.Error()})
	case errors.Is(err, apperrors.ErrSeatUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrSeatUnavailable.Error()})
	case errors.Is(err, apperrors.ErrStaleTicketState):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrStaleTicketState.Error()})
	case errors.Is(err, apperrors.ErrDuplicateTrip):
		c.JSON(http.StatusConflict, gin.H{"error": apperrors.ErrDuplicateTrip.Error()})
	case errors.Is(err, apperrors.ErrBookingExpired):
		c.JSON(http.StatusGone, gin.H{"error": apperrors.ErrBookingExpired.Error()})
	case errors.Is(err, apperrors.ErrNoFuelPrice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": apperrors.ErrNoFuelPrice.Error()})
	default:
		slog.Error("Request failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
