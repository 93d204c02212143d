package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ticket statuses. Only "booked" is transient; the other two are terminal.
const (
	TicketBooked    = "booked"
	TicketSold      = "sold"
	TicketCancelled = "cancelled"
)

// DefaultBookingTTL is the grace period before an unconfirmed booking expires.
const DefaultBookingTTL = time.Hour

// Destination is a terminal point served by one or more routes
type Destination struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// BusModel defines a bus make: its capacity and fuel cost basis
type BusModel struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	FuelConsumption decimal.Decimal `json:"fuel_consumption" db:"fuel_consumption"` // litres per 100 km
	SeatsCount      int             `json:"seats_count" db:"seats_count"`
}

// Bus is a concrete vehicle of a fixed model
type Bus struct {
	ID         int64  `json:"id" db:"id"`
	BusModelID int64  `json:"bus_model_id" db:"bus_model_id"`
	Number     string `json:"number" db:"number"`
}

// Route is a recurring scheduled service to a destination.
// DaysOfWeek holds ISO weekdays (1=Monday..7=Sunday) as a comma-separated list.
type Route struct {
	ID            int64           `json:"id" db:"id"`
	Number        string          `json:"number" db:"number"`
	Tariff        decimal.Decimal `json:"tariff" db:"tariff"` // currency per km basis
	DaysOfWeek    string          `json:"days_of_week" db:"days_of_week"`
	DestinationID int64           `json:"destination_id" db:"destination_id"`
	Distance      decimal.Decimal `json:"distance" db:"distance"` // km
	DepartureTime string          `json:"departure_time" db:"departure_time"`
	ArrivalTime   string          `json:"arrival_time" db:"arrival_time"`
	BusModelID    int64           `json:"bus_model_id" db:"bus_model_id"`
}

// Weekdays parses DaysOfWeek into a sorted, de-duplicated list of ISO weekdays.
func (r *Route) Weekdays() ([]int, error) {
	return ParseWeekdays(r.DaysOfWeek)
}

// RunsOn reports whether the route operates on the given ISO weekday.
func (r *Route) RunsOn(isoWeekday int) bool {
	days, err := r.Weekdays()
	if err != nil {
		return false
	}
	for _, d := range days {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// ParseWeekdays validates and normalizes a comma-separated ISO weekday list.
// This is the single parser every entry point (API, generator, tests) uses.
func ParseWeekdays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("weekday list is empty")
	}

	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(s, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q: %w", part, err)
		}
		if day < 1 || day > 7 {
			return nil, fmt.Errorf("weekday %d is out of range 1..7", day)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days, nil
}

// ISOWeekday returns the ISO weekday (1=Monday..7=Sunday) of a date.
// time.Weekday numbers Sunday as 0, so it cannot be used directly.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// FuelPrice is the single current fuel price. The table holds exactly one row;
// updates replace it atomically, so "latest" is never ambiguous.
type FuelPrice struct {
	Price     decimal.Decimal `json:"price" db:"price"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Trip is one run of a route on a specific date with an assigned bus.
// (RouteID, Date) is unique.
type Trip struct {
	ID      int64     `json:"id" db:"id"`
	RouteID int64     `json:"route_id" db:"route_id"`
	BusID   int64     `json:"bus_id" db:"bus_id"`
	Date    time.Time `json:"date" db:"date"`

	// Joined route/bus attributes, filled by the repository on read
	RouteNumber     string          `json:"route_number,omitempty" db:"-"`
	Destination     string          `json:"destination,omitempty" db:"-"`
	DepartureTime   string          `json:"departure_time,omitempty" db:"-"`
	BusNumber       string          `json:"bus_number,omitempty" db:"-"`
	SeatsCount      int             `json:"seats_count,omitempty" db:"-"`
	Tariff          decimal.Decimal `json:"-" db:"-"`
	Distance        decimal.Decimal `json:"-" db:"-"`
	FuelConsumption decimal.Decimal `json:"-" db:"-"`
}

// Ticket is a seat reservation on a trip. Price is frozen at booking time.
type Ticket struct {
	ID           int64           `json:"id" db:"id"`
	TripID       int64           `json:"trip_id" db:"trip_id"`
	TicketNumber string          `json:"ticket_number" db:"ticket_number"`
	SeatNumber   int             `json:"seat_number" db:"seat_number"`
	Status       string          `json:"status" db:"status"`
	BookingTime  time.Time       `json:"booking_time" db:"booking_time"`
	SoldTime     *time.Time      `json:"sold_time,omitempty" db:"sold_time"`
	Price        decimal.Decimal `json:"price" db:"price"`
}

// IsExpired reports whether an unconfirmed booking has outlived its grace
// period. Sold and cancelled tickets never expire. This is the pure predicate;
// the sweep job is the only thing that acts on it.
func (t *Ticket) IsExpired(now time.Time, ttl time.Duration) bool {
	if t.Status != TicketBooked {
		return false
	}
	return now.Sub(t.BookingTime) > ttl
}
