package repository

import (
	"context"
	"database/sql"

	"vokzal/internal/database"
	"vokzal/internal/models"
)

// FleetRepository covers the static reference data: destinations, bus models
// and the buses themselves.
type FleetRepository struct {
	db *database.DB
}

func NewFleetRepository(db *database.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

func (r *FleetRepository) CreateDestination(ctx context.Context, d *models.Destination) error {
	query := `INSERT INTO destinations (name) VALUES ($1) RETURNING id`
	return r.db.QueryRowContext(ctx, query, d.Name).Scan(&d.ID)
}

func (r *FleetRepository) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	query := `SELECT id, name FROM destinations ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}

	return destinations, rows.Err()
}

func (r *FleetRepository) CreateBusModel(ctx context.Context, m *models.BusModel) error {
	query := `
		INSERT INTO bus_models (name, fuel_consumption, seats_count)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.Name, m.FuelConsumption, m.SeatsCount).Scan(&m.ID)
}

func (r *FleetRepository) GetBusModel(ctx context.Context, id int64) (*models.BusModel, error) {
	m := &models.BusModel{}
	query := `SELECT id, name, fuel_consumption, seats_count FROM bus_models WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.FuelConsumption, &m.SeatsCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return m, err
}

func (r *FleetRepository) ListBusModels(ctx context.Context) ([]models.BusModel, error) {
	query := `SELECT id, name, fuel_consumption, seats_count FROM bus_models ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var busModels []models.BusModel
	for rows.Next() {
		var m models.BusModel
		if err := rows.Scan(&m.ID, &m.Name, &m.FuelConsumption, &m.SeatsCount); err != nil {
			return nil, err
		}
		busModels = append(busModels, m)
	}

	return busModels, rows.Err()
}

func (r *FleetRepository) CreateBus(ctx context.Context, b *models.Bus) error {
	query := `INSERT INTO buses (bus_model_id, number) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.BusModelID, b.Number).Scan(&b.ID)
}

func (r *FleetRepository) ListBuses(ctx context.Context) ([]models.Bus, error) {
	query := `SELECT id, bus_model_id, number FROM buses ORDER BY number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buses []models.Bus
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.BusModelID, &b.Number); err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}

	return buses, rows.Err()
}

// FindBusByModel returns any bus of the given model, or nil when none exists.
// The generator does not balance buses across trips; any match will do.
func (r *FleetRepository) FindBusByModel(ctx context.Context, busModelID int64) (*models.Bus, error) {
	b := &models.Bus{}
	query := `SELECT id, bus_model_id, number FROM buses WHERE bus_model_id = $1 ORDER BY id LIMIT 1`

	err := r.db.QueryRowContext(ctx, query, busModelID).Scan(&b.ID, &b.BusModelID, &b.Number)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return b, err
}
