package service

import (
	"context"
	"fmt"

	apperrors "vokzal/internal/errors"
	"vokzal/internal/models"
	"vokzal/internal/repository"
)

// CatalogService manages the reference data behind scheduling: destinations,
// bus models, buses and routes.
type CatalogService struct {
	fleetRepo *repository.FleetRepository
	routeRepo *repository.RouteRepository
}

func NewCatalogService(fleetRepo *repository.FleetRepository, routeRepo *repository.RouteRepository) *CatalogService {
	return &CatalogService{fleetRepo: fleetRepo, routeRepo: routeRepo}
}

func (s *CatalogService) CreateDestination(ctx context.Context, req *models.CreateDestinationRequest) (*models.Destination, error) {
	destination := &models.Destination{Name: req.Name}
	if err := s.fleetRepo.CreateDestination(ctx, destination); err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}
	return destination, nil
}

func (s *CatalogService) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	return s.fleetRepo.ListDestinations(ctx)
}

func (s *CatalogService) CreateBusModel(ctx context.Context, req *models.CreateBusModelRequest) (*models.BusModel, error) {
	if req.SeatsCount <= 0 {
		return nil, fmt.Errorf("%w: seats_count must be positive", apperrors.ErrValidation)
	}
	if req.FuelConsumption.IsNegative() {
		return nil, fmt.Errorf("%w: fuel_consumption must not be negative", apperrors.ErrValidation)
	}

	busModel := &models.BusModel{
		Name:            req.Name,
		FuelConsumption: req.FuelConsumption,
		SeatsCount:      req.SeatsCount,
	}
	if err := s.fleetRepo.CreateBusModel(ctx, busModel); err != nil {
		return nil, fmt.Errorf("failed to create bus model: %w", err)
	}
	return busModel, nil
}

func (s *CatalogService) ListBusModels(ctx context.Context) ([]models.BusModel, error) {
	return s.fleetRepo.ListBusModels(ctx)
}

func (s *CatalogService) CreateBus(ctx context.Context, req *models.CreateBusRequest) (*models.Bus, error) {
	busModel, err := s.fleetRepo.GetBusModel(ctx, req.BusModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bus model: %w", err)
	}
	if busModel == nil {
		return nil, apperrors.ErrNotFound
	}

	bus := &models.Bus{BusModelID: req.BusModelID, Number: req.Number}
	if err := s.fleetRepo.CreateBus(ctx, bus); err != nil {
		return nil, fmt.Errorf("failed to create bus: %w", err)
	}
	return bus, nil
}

func (s *CatalogService) ListBuses(ctx context.Context) ([]models.Bus, error) {
	return s.fleetRepo.ListBuses(ctx)
}

// CreateRoute validates the weekday pattern and the bus model reference; the
// same weekday parser is used everywhere a pattern enters the system.
func (s *CatalogService) CreateRoute(ctx context.Context, req *models.CreateRouteRequest) (*models.Route, error) {
	if _, err := models.ParseWeekdays(req.DaysOfWeek); err != nil {
		return nil, fmt.Errorf("%w: invalid days_of_week: %v", apperrors.ErrValidation, err)
	}

	busModel, err := s.fleetRepo.GetBusModel(ctx, req.BusModelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bus model: %w", err)
	}
	if busModel == nil {
		return nil, apperrors.ErrNotFound
	}

	route := &models.Route{
		Number:        req.Number,
		Tariff:        req.Tariff,
		DaysOfWeek:    req.DaysOfWeek,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		BusModelID:    req.BusModelID,
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return route, nil
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.routeRepo.List(ctx)
}
