package handlers

import (
	"net/http"
	"time"

	"vokzal/internal/models"

	"github.com/gin-gonic/gin"
)

// ListTrips - GET /api/trips?date=YYYY-MM-DD&destination=
// Departure board for a date, optionally filtered by destination.
func (h *Handlers) ListTrips(c *gin.Context) {
	items, err := h.services.Trips.ListForDate(c.Request.Context(), c.Query("date"), c.Query("destination"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// GenerateTrips - POST /api/trips/generate
// Materialize trips for a date (tomorrow when omitted). Idempotent.
func (h *Handlers) GenerateTrips(c *gin.Context) {
	var req models.GenerateTripsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := time.Now().AddDate(0, 0, 1)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	report, err := h.services.Trips.GenerateForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
