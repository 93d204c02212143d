package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createDestinationsTable,
		createBusModelsTable,
		createBusesTable,
		createRoutesTable,
		createFuelPriceTable,
		createTripsTable,
		createTicketsTable,
		createTicketsSeatIndex,
		createTicketsStatusIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createDestinationsTable = `
CREATE TABLE IF NOT EXISTS destinations (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE
);`

const createBusModelsTable = `
CREATE TABLE IF NOT EXISTS bus_models (
    id SERIAL PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    fuel_consumption NUMERIC(5,2) NOT NULL,
    seats_count INTEGER NOT NULL CHECK (seats_count > 0)
);`

const createBusesTable = `
CREATE TABLE IF NOT EXISTS buses (
    id SERIAL PRIMARY KEY,
    bus_model_id INTEGER NOT NULL REFERENCES bus_models(id),
    number VARCHAR(20) NOT NULL UNIQUE
);`

const createRoutesTable = `
CREATE TABLE IF NOT EXISTS routes (
    id SERIAL PRIMARY KEY,
    number VARCHAR(20) NOT NULL UNIQUE,
    tariff NUMERIC(10,2) NOT NULL,
    days_of_week VARCHAR(50) NOT NULL,
    destination_id INTEGER NOT NULL REFERENCES destinations(id),
    distance NUMERIC(8,2) NOT NULL,
    departure_time TIME NOT NULL,
    arrival_time TIME NOT NULL,
    bus_model_id INTEGER NOT NULL REFERENCES bus_models(id)
);`

// Single-row table: the fixed id makes concurrent updates converge on one
// record, so "current price" needs no latest-timestamp disambiguation.
const createFuelPriceTable = `
CREATE TABLE IF NOT EXISTS fuel_price (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    price NUMERIC(8,2) NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTripsTable = `
CREATE TABLE IF NOT EXISTS trips (
    id SERIAL PRIMARY KEY,
    route_id INTEGER NOT NULL REFERENCES routes(id),
    bus_id INTEGER NOT NULL REFERENCES buses(id),
    date DATE NOT NULL,

    UNIQUE (route_id, date)
);`

const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
    id SERIAL PRIMARY KEY,
    trip_id INTEGER NOT NULL REFERENCES trips(id),
    ticket_number VARCHAR(60) NOT NULL UNIQUE,
    seat_number INTEGER NOT NULL CHECK (seat_number >= 1),
    status VARCHAR(10) NOT NULL DEFAULT 'booked',
    booking_time TIMESTAMP NOT NULL DEFAULT NOW(),
    sold_time TIMESTAMP,
    price NUMERIC(10,2) NOT NULL,

    CHECK (status IN ('booked', 'sold', 'cancelled'))
);`

// A seat may be held by at most one live (non-cancelled) ticket per trip.
// The partial unique index is the last line of defence behind the booking
// transaction: a lost race surfaces as a 23505 instead of a double booking.
const createTicketsSeatIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS tickets_trip_seat_live_idx
ON tickets (trip_id, seat_number)
WHERE status <> 'cancelled';`

const createTicketsStatusIndex = `
CREATE INDEX IF NOT EXISTS tickets_status_booking_time_idx
ON tickets (status, booking_time);`
