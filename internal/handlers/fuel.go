package handlers

import (
	"net/http"

	"vokzal/internal/models"

	"github.com/gin-gonic/gin"
)

// GetFuelPrice - GET /api/fuel-price
func (h *Handlers) GetFuelPrice(c *gin.Context) {
	fuel, err := h.services.Fuel.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fuel)
}

// SetFuelPrice - PUT /api/fuel-price
// Replace the current fuel price. There is exactly one active price; this is
// an atomic swap, not an append.
func (h *Handlers) SetFuelPrice(c *gin.Context) {
	var req models.SetFuelPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fuel, err := h.services.Fuel.Set(c.Request.Context(), req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fuel)
}
