package service

import (
	"context"
	"fmt"

	apperrors "vokzal/internal/errors"
	"vokzal/internal/models"
	"vokzal/internal/repository"

	"github.com/shopspring/decimal"
)

// FuelService exposes the single-slot fuel price used by the fare calculator.
type FuelService struct {
	fuelRepo *repository.FuelPriceRepository
}

func NewFuelService(fuelRepo *repository.FuelPriceRepository) *FuelService {
	return &FuelService{fuelRepo: fuelRepo}
}

func (s *FuelService) Get(ctx context.Context) (*models.FuelPrice, error) {
	fuel, err := s.fuelRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fuel price: %w", err)
	}
	if fuel == nil {
		return nil, apperrors.ErrNoFuelPrice
	}
	return fuel, nil
}

// Set replaces the current price atomically.
func (s *FuelService) Set(ctx context.Context, price decimal.Decimal) (*models.FuelPrice, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: fuel price must be positive", apperrors.ErrValidation)
	}

	fuel, err := s.fuelRepo.Replace(ctx, price)
	if err != nil {
		return nil, fmt.Errorf("failed to set fuel price: %w", err)
	}
	return fuel, nil
}
