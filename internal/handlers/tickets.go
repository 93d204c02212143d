package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "vokzal/internal/errors"
	"vokzal/internal/middleware"
	"vokzal/internal/models"

	"github.com/gin-gonic/gin"
)

// BookTicket - POST /api/tickets
// Reserve a seat on a trip. The reservation holds for the booking TTL and
// must be confirmed to become a sale.
func (h *Handlers) BookTicket(c *gin.Context) {
	var req models.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.services.Tickets.Book(c.Request.Context(), &req)
	if err != nil {
		middleware.BookingOutcomes.WithLabelValues(bookingOutcome(err)).Inc()
		respondError(c, err)
		return
	}

	middleware.BookingOutcomes.WithLabelValues("booked").Inc()
	c.JSON(http.StatusCreated, ticket)
}

func bookingOutcome(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSeat):
		return "invalid_seat"
	case errors.Is(err, apperrors.ErrSeatUnavailable):
		return "seat_taken"
	case errors.Is(err, apperrors.ErrNoFuelPrice):
		return "no_fuel_price"
	default:
		return "error"
	}
}

// GetTicket - GET /api/tickets/:number
func (h *Handlers) GetTicket(c *gin.Context) {
	ticket, err := h.services.Tickets.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// ConfirmTicket - POST /api/tickets/:number/confirm
// Turn a booking into a sale. Expired bookings are rejected.
func (h *Handlers) ConfirmTicket(c *gin.Context) {
	ticket, err := h.services.Tickets.Confirm(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// CancelTicket - POST /api/tickets/:number/cancel
func (h *Handlers) CancelTicket(c *gin.Context) {
	ticket, err := h.services.Tickets.Cancel(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// SweepExpiredTickets - POST /api/tickets/sweep
// Batch-cancel reservations past their grace period.
func (h *Handlers) SweepExpiredTickets(c *gin.Context) {
	report, err := h.services.Tickets.SweepExpired(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetAvailableSeats - GET /api/trips/:id/seats
func (h *Handlers) GetAvailableSeats(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}

	seats, err := h.services.Tickets.AvailableSeats(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seats)
}

// GetFareQuote - GET /api/trips/:id/quote
// Current price of the next ticket on the trip.
func (h *Handlers) GetFareQuote(c *gin.Context) {
	tripID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}

	quote, err := h.services.Tickets.Quote(c.Request.Context(), tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
