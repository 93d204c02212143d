package service

import (
	"context"
	"fmt"
	"time"

	apperrors "vokzal/internal/errors"
	"vokzal/internal/logger"
	"vokzal/internal/messaging"
	"vokzal/internal/models"
	"vokzal/internal/repository"
	"vokzal/internal/search"
)

const dateLayout = "2006-01-02"

// TripService materializes trips from route schedules and serves the
// departure board.
type TripService struct {
	routeRepo    *repository.RouteRepository
	fleetRepo    *repository.FleetRepository
	tripRepo     *repository.TripRepository
	searchClient *search.Client
	natsClient   *messaging.NATSClient
	now          func() time.Time
}

func NewTripService(routeRepo *repository.RouteRepository, fleetRepo *repository.FleetRepository, tripRepo *repository.TripRepository, searchClient *search.Client, natsClient *messaging.NATSClient) *TripService {
	return &TripService{
		routeRepo:    routeRepo,
		fleetRepo:    fleetRepo,
		tripRepo:     tripRepo,
		searchClient: searchClient,
		natsClient:   natsClient,
		now:          time.Now,
	}
}

// GenerateForDate creates a trip for every route scheduled on the date's
// weekday. The run is idempotent: existing (route, date) pairs are skipped,
// and a route with no matching bus is reported as a warning. A failure on one
// route never aborts the rest.
func (s *TripService) GenerateForDate(ctx context.Context, date time.Time) (*models.TripGenerationReport, error) {
	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}

	year, month, day := date.Date()
	date = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	weekday := models.ISOWeekday(date)
	report := &models.TripGenerationReport{
		Date:   date.Format(dateLayout),
		Errors: []string{},
	}

	log := logger.WithContext(ctx)

	for i := range routes {
		route := &routes[i]

		days, err := route.Weekdays()
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("route %s: %v", route.Number, err))
			log.Error("Route has an invalid weekday list", "route", route.Number, "error", err)
			continue
		}
		if !containsDay(days, weekday) {
			continue
		}

		exists, err := s.tripRepo.ExistsForRouteDate(ctx, route.ID, date)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("route %s: %v", route.Number, err))
			log.Error("Failed to check existing trip", "route", route.Number, "error", err)
			continue
		}
		if exists {
			report.SkippedExists++
			continue
		}

		bus, err := s.fleetRepo.FindBusByModel(ctx, route.BusModelID)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("route %s: %v", route.Number, err))
			log.Error("Failed to find a bus", "route", route.Number, "error", err)
			continue
		}
		if bus == nil {
			report.SkippedNoBus++
			log.Warn("No bus available for route", "route", route.Number, "bus_model_id", route.BusModelID)
			continue
		}

		trip := &models.Trip{RouteID: route.ID, BusID: bus.ID, Date: date}
		err = s.tripRepo.Create(ctx, trip)
		if err == apperrors.ErrDuplicateTrip {
			// Lost a race with a concurrent generator run; same outcome as
			// the exists check above.
			report.SkippedExists++
			continue
		}
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("route %s: %v", route.Number, err))
			log.Error("Failed to create trip", "route", route.Number, "error", err)
			continue
		}

		report.Created++
		log.Info("Created trip", "route", route.Number, "date", report.Date, "bus", bus.Number)

		s.indexTrip(ctx, trip, route, bus)
		s.publishTripCreated(ctx, trip, route, bus)
	}

	return report, nil
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// ListForDate serves the departure board. The search index answers when it is
// configured; otherwise the lookup falls back to Postgres.
func (s *TripService) ListForDate(ctx context.Context, date, destination string) ([]models.TripListItem, error) {
	if date == "" {
		date = s.now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrValidation, date)
	}

	if s.searchClient != nil {
		items, err := s.searchClient.SearchTrips(ctx, date, destination)
		if err == nil {
			return items, nil
		}
		logger.WithContext(ctx).Error("Search index lookup failed, falling back to database", "error", err)
	}

	day, _ := time.Parse(dateLayout, date)
	trips, err := s.tripRepo.ListByDate(ctx, day, destination)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	items := make([]models.TripListItem, len(trips))
	for i, trip := range trips {
		items[i] = models.TripListItem{
			ID:            trip.ID,
			RouteNumber:   trip.RouteNumber,
			Destination:   trip.Destination,
			Date:          trip.Date.Format(dateLayout),
			DepartureTime: trip.DepartureTime,
			BusNumber:     trip.BusNumber,
		}
	}

	return items, nil
}

func (s *TripService) indexTrip(ctx context.Context, trip *models.Trip, route *models.Route, bus *models.Bus) {
	if s.searchClient == nil {
		return
	}

	destination := trip.Destination
	if destination == "" {
		// The generator builds trips from the route list, which does not
		// carry the destination name; load it through the full trip view.
		full, err := s.tripRepo.GetByID(ctx, trip.ID)
		if err == nil && full != nil {
			destination = full.Destination
		}
	}

	item := models.TripListItem{
		ID:            trip.ID,
		RouteNumber:   route.Number,
		Destination:   destination,
		Date:          trip.Date.Format(dateLayout),
		DepartureTime: route.DepartureTime,
		BusNumber:     bus.Number,
		IndexedAt:     s.now(),
	}

	if err := s.searchClient.IndexTrip(ctx, item); err != nil {
		logger.WithContext(ctx).Error("Failed to index trip",
			"error", err,
			"trip_id", trip.ID,
			"route", route.Number)
	}
}

func (s *TripService) publishTripCreated(ctx context.Context, trip *models.Trip, route *models.Route, bus *models.Bus) {
	event := models.TripCreatedEvent{
		TripID:      trip.ID,
		RouteNumber: route.Number,
		Date:        trip.Date.Format(dateLayout),
		BusNumber:   bus.Number,
		Timestamp:   s.now(),
	}

	if err := s.natsClient.Publish(models.EventTripCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish trip created event",
			"error", err,
			"trip_id", trip.ID,
			"event_type", models.EventTripCreated)
	}
}
