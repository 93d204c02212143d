package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDestinationRequest - request to register a destination
type CreateDestinationRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateBusModelRequest - request to register a bus model
type CreateBusModelRequest struct {
	Name            string          `json:"name" binding:"required"`
	FuelConsumption decimal.Decimal `json:"fuel_consumption" binding:"required"`
	SeatsCount      int             `json:"seats_count" binding:"required,gt=0"`
}

// CreateBusRequest - request to register a bus
type CreateBusRequest struct {
	BusModelID int64  `json:"bus_model_id" binding:"required"`
	Number     string `json:"number" binding:"required"`
}

// CreateRouteRequest - request to register a route
type CreateRouteRequest struct {
	Number        string          `json:"number" binding:"required"`
	Tariff        decimal.Decimal `json:"tariff" binding:"required"`
	DaysOfWeek    string          `json:"days_of_week" binding:"required"`
	DestinationID int64           `json:"destination_id" binding:"required"`
	Distance      decimal.Decimal `json:"distance" binding:"required"`
	DepartureTime string          `json:"departure_time" binding:"required"`
	ArrivalTime   string          `json:"arrival_time" binding:"required"`
	BusModelID    int64           `json:"bus_model_id" binding:"required"`
}

// CreatedResponse - generic response carrying the new record id
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// SetFuelPriceRequest - request to replace the current fuel price
type SetFuelPriceRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
}

// BookTicketRequest - request to book a seat on a trip
type BookTicketRequest struct {
	TripID     int64 `json:"trip_id" binding:"required"`
	SeatNumber int   `json:"seat_number" binding:"required"`
}

// AvailableSeatsResponse - free seat numbers of a trip, ascending
type AvailableSeatsResponse struct {
	TripID     int64 `json:"trip_id"`
	SeatsCount int   `json:"seats_count"`
	Available  []int `json:"available"`
}

// FareQuoteResponse - price breakdown for the next ticket on a trip
type FareQuoteResponse struct {
	TripID            int64           `json:"trip_id"`
	SoldCount         int             `json:"sold_count"`
	BasePrice         decimal.Decimal `json:"base_price"`
	DistanceDiscount  decimal.Decimal `json:"distance_discount"`
	OccupancyDiscount decimal.Decimal `json:"occupancy_discount"`
	FinalPrice        decimal.Decimal `json:"final_price"`
}

// GenerateTripsRequest - batch trigger for the trip generator.
// Date defaults to tomorrow when omitted.
type GenerateTripsRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD
}

// TripGenerationReport - per-route outcomes of one generator run
type TripGenerationReport struct {
	Date          string   `json:"date"`
	Created       int      `json:"created"`
	SkippedExists int      `json:"skipped_exists"`
	SkippedNoBus  int      `json:"skipped_no_bus"`
	Errors        []string `json:"errors"`
}

// SweepReport - outcome of one expiry sweep run
type SweepReport struct {
	Examined  int `json:"examined"`
	Cancelled int `json:"cancelled"`
}

// TripListItem - departure board entry
type TripListItem struct {
	ID            int64     `json:"id"`
	RouteNumber   string    `json:"route_number"`
	Destination   string    `json:"destination"`
	Date          string    `json:"date"`
	DepartureTime string    `json:"departure_time"`
	BusNumber     string    `json:"bus_number,omitempty"`
	IndexedAt     time.Time `json:"indexed_at,omitempty"`
}
