package repository

import (
	"context"
	"database/sql"

	"vokzal/internal/database"
	"vokzal/internal/models"
)

type RouteRepository struct {
	db *database.DB
}

func NewRouteRepository(db *database.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) Create(ctx context.Context, route *models.Route) error {
	query := `
		INSERT INTO routes (number, tariff, days_of_week, destination_id, distance, departure_time, arrival_time, bus_model_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		route.Number,
		route.Tariff,
		route.DaysOfWeek,
		route.DestinationID,
		route.Distance,
		route.DepartureTime,
		route.ArrivalTime,
		route.BusModelID,
	).Scan(&route.ID)
}

func (r *RouteRepository) GetByID(ctx context.Context, id int64) (*models.Route, error) {
	route := &models.Route{}
	query := `
		SELECT id, number, tariff, days_of_week, destination_id, distance, departure_time, arrival_time, bus_model_id
		FROM routes
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&route.ID,
		&route.Number,
		&route.Tariff,
		&route.DaysOfWeek,
		&route.DestinationID,
		&route.Distance,
		&route.DepartureTime,
		&route.ArrivalTime,
		&route.BusModelID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return route, err
}

func (r *RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	query := `
		SELECT id, number, tariff, days_of_week, destination_id, distance, departure_time, arrival_time, bus_model_id
		FROM routes
		ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var route models.Route
		err := rows.Scan(
			&route.ID,
			&route.Number,
			&route.Tariff,
			&route.DaysOfWeek,
			&route.DestinationID,
			&route.Distance,
			&route.DepartureTime,
			&route.ArrivalTime,
			&route.BusModelID,
		)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}
