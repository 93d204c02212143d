package repository

import (
	"context"
	"database/sql"
	"time"

	"vokzal/internal/database"
	apperrors "vokzal/internal/errors"
	"vokzal/internal/models"
)

type TripRepository struct {
	db *database.DB
}

func NewTripRepository(db *database.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a trip. A concurrent insert for the same (route, date) loses
// on the unique constraint and comes back as ErrDuplicateTrip.
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := `
		INSERT INTO trips (route_id, bus_id, date)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, trip.RouteID, trip.BusID, trip.Date).Scan(&trip.ID)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateTrip
	}

	return err
}

// GetByID loads a trip together with the route, bus and capacity attributes
// the booking flow needs.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*models.Trip, error) {
	trip := &models.Trip{}
	query := `
		SELECT t.id, t.route_id, t.bus_id, t.date,
		       r.number, r.tariff, r.distance, r.departure_time,
		       d.name, b.number, bm.seats_count, bm.fuel_consumption
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		JOIN destinations d ON d.id = r.destination_id
		JOIN buses b ON b.id = t.bus_id
		JOIN bus_models bm ON bm.id = b.bus_model_id
		WHERE t.id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.RouteID,
		&trip.BusID,
		&trip.Date,
		&trip.RouteNumber,
		&trip.Tariff,
		&trip.Distance,
		&trip.DepartureTime,
		&trip.Destination,
		&trip.BusNumber,
		&trip.SeatsCount,
		&trip.FuelConsumption,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return trip, err
}

// ExistsForRouteDate reports whether a trip already exists for (route, date).
func (r *TripRepository) ExistsForRouteDate(ctx context.Context, routeID int64, date time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM trips WHERE route_id = $1 AND date = $2)`

	err := r.db.QueryRowContext(ctx, query, routeID, date).Scan(&exists)
	return exists, err
}

// ListByDate returns the departure board for a date, optionally filtered by
// destination name. This is the Postgres fallback for the search index.
func (r *TripRepository) ListByDate(ctx context.Context, date time.Time, destination string) ([]models.Trip, error) {
	query := `
		SELECT t.id, t.route_id, t.bus_id, t.date,
		       r.number, r.departure_time, d.name, b.number, bm.seats_count
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		JOIN destinations d ON d.id = r.destination_id
		JOIN buses b ON b.id = t.bus_id
		JOIN bus_models bm ON bm.id = b.bus_model_id
		WHERE t.date = $1`

	args := []interface{}{date}
	if destination != "" {
		query += ` AND d.name ILIKE '%' || $2 || '%'`
		args = append(args, destination)
	}
	query += ` ORDER BY r.departure_time, r.number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		err := rows.Scan(
			&trip.ID,
			&trip.RouteID,
			&trip.BusID,
			&trip.Date,
			&trip.RouteNumber,
			&trip.DepartureTime,
			&trip.Destination,
			&trip.BusNumber,
			&trip.SeatsCount,
		)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}
