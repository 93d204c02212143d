package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NATS subjects for lifecycle events
const (
	EventTicketBooked    = "ticket.booked"
	EventTicketSold      = "ticket.sold"
	EventTicketCancelled = "ticket.cancelled"
	EventTicketExpired   = "ticket.expired"
	EventTripCreated     = "trip.created"
)

// TicketEvent is published on every ticket state change
type TicketEvent struct {
	TicketNumber string          `json:"ticket_number"`
	TripID       int64           `json:"trip_id"`
	SeatNumber   int             `json:"seat_number"`
	Status       string          `json:"status"`
	Price        decimal.Decimal `json:"price"`
	Reason       string          `json:"reason,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
}

// TripCreatedEvent is published when the generator materializes a trip
type TripCreatedEvent struct {
	TripID      int64     `json:"trip_id"`
	RouteNumber string    `json:"route_number"`
	Date        string    `json:"date"`
	BusNumber   string    `json:"bus_number"`
	Timestamp   time.Time `json:"timestamp"`
}
