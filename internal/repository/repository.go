package repository

import (
	"errors"

	"vokzal/internal/database"

	"github.com/lib/pq"
)

type Repositories struct {
	Fleet   *FleetRepository
	Routes  *RouteRepository
	Trips   *TripRepository
	Tickets *TicketRepository
	Fuel    *FuelPriceRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Fleet:   NewFleetRepository(db),
		Routes:  NewRouteRepository(db),
		Trips:   NewTripRepository(db),
		Tickets: NewTicketRepository(db),
		Fuel:    NewFuelPriceRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
// Booking and trip creation lean on unique indexes to settle races.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
