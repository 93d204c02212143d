package handlers

import (
	"net/http"

	"vokzal/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateDestination - POST /api/destinations
func (h *Handlers) CreateDestination(c *gin.Context) {
	var req models.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	destination, err := h.services.Catalog.CreateDestination(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, destination)
}

// ListDestinations - GET /api/destinations
func (h *Handlers) ListDestinations(c *gin.Context) {
	destinations, err := h.services.Catalog.ListDestinations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, destinations)
}

// CreateBusModel - POST /api/bus-models
func (h *Handlers) CreateBusModel(c *gin.Context) {
	var req models.CreateBusModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	busModel, err := h.services.Catalog.CreateBusModel(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, busModel)
}

// ListBusModels - GET /api/bus-models
func (h *Handlers) ListBusModels(c *gin.Context) {
	busModels, err := h.services.Catalog.ListBusModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, busModels)
}

// CreateBus - POST /api/buses
func (h *Handlers) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bus, err := h.services.Catalog.CreateBus(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bus)
}

// ListBuses - GET /api/buses
func (h *Handlers) ListBuses(c *gin.Context) {
	buses, err := h.services.Catalog.ListBuses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// CreateRoute - POST /api/routes
func (h *Handlers) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.services.Catalog.CreateRoute(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

// ListRoutes - GET /api/routes
func (h *Handlers) ListRoutes(c *gin.Context) {
	routes, err := h.services.Catalog.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, routes)
}
