package repository

import (
	"context"
	"database/sql"

	"vokzal/internal/database"
	"vokzal/internal/models"

	"github.com/shopspring/decimal"
)

// FuelPriceRepository manages the single-slot fuel price record. The table
// holds one row with a fixed id, so there is never more than one "current"
// price to choose between.
type FuelPriceRepository struct {
	db *database.DB
}

func NewFuelPriceRepository(db *database.DB) *FuelPriceRepository {
	return &FuelPriceRepository{db: db}
}

// Get returns the current fuel price, or nil if none has been set yet.
func (r *FuelPriceRepository) Get(ctx context.Context) (*models.FuelPrice, error) {
	fp := &models.FuelPrice{}
	query := `SELECT price, updated_at FROM fuel_price WHERE id = 1`

	err := r.db.QueryRowContext(ctx, query).Scan(&fp.Price, &fp.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return fp, err
}

// Replace atomically sets the current fuel price.
func (r *FuelPriceRepository) Replace(ctx context.Context, price decimal.Decimal) (*models.FuelPrice, error) {
	fp := &models.FuelPrice{}
	query := `
		INSERT INTO fuel_price (id, price, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET price = EXCLUDED.price, updated_at = NOW()
		RETURNING price, updated_at`

	err := r.db.QueryRowContext(ctx, query, price).Scan(&fp.Price, &fp.UpdatedAt)
	return fp, err
}
