package service

import (
	"context"
	"fmt"
	"time"

	apperrors "vokzal/internal/errors"
	"vokzal/internal/logger"
	"vokzal/internal/messaging"
	"vokzal/internal/models"
	"vokzal/internal/pricing"
	"vokzal/internal/repository"
)

// TicketService owns the booking lifecycle: booked -> sold | cancelled.
type TicketService struct {
	ticketRepo *repository.TicketRepository
	tripRepo   *repository.TripRepository
	fuelRepo   *repository.FuelPriceRepository
	natsClient *messaging.NATSClient
	bookingTTL time.Duration
	now        func() time.Time
}

func NewTicketService(ticketRepo *repository.TicketRepository, tripRepo *repository.TripRepository, fuelRepo *repository.FuelPriceRepository, natsClient *messaging.NATSClient, bookingTTL time.Duration) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		tripRepo:   tripRepo,
		fuelRepo:   fuelRepo,
		natsClient: natsClient,
		bookingTTL: bookingTTL,
		now:        time.Now,
	}
}

// Book reserves a seat. The repository runs the whole check-then-create as
// one transaction, so two concurrent attempts on the same seat cannot both
// succeed.
func (s *TicketService) Book(ctx context.Context, req *models.BookTicketRequest) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.Book(ctx, req.TripID, req.SeatNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to book ticket: %w", err)
	}

	s.publishTicketEvent(ctx, models.EventTicketBooked, ticket, "")

	return ticket, nil
}

// Confirm moves a booking to sold. Expired bookings are rejected even before
// the sweep has cancelled them.
func (s *TicketService) Confirm(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.ErrNotFound
	}

	now := s.now()
	if ticket.IsExpired(now, s.bookingTTL) {
		return nil, apperrors.ErrBookingExpired
	}
	if ticket.Status != models.TicketBooked {
		return nil, apperrors.ErrStaleTicketState
	}

	// Conditional write: the cutoff repeats the expiry check at write time,
	// so a booking that expires between the read above and the update cannot
	// slip through.
	sold, err := s.ticketRepo.MarkSold(ctx, ticketNumber, now.Add(-s.bookingTTL))
	if err == apperrors.ErrStaleTicketState {
		// Lost a race: either a concurrent transition or expiry crossing the
		// cutoff. Re-read to report the more precise reason.
		current, getErr := s.ticketRepo.GetByNumber(ctx, ticketNumber)
		if getErr == nil && current != nil && current.IsExpired(s.now(), s.bookingTTL) {
			return nil, apperrors.ErrBookingExpired
		}
		return nil, apperrors.ErrStaleTicketState
	}
	if err != nil {
		return nil, fmt.Errorf("failed to confirm ticket: %w", err)
	}

	s.publishTicketEvent(ctx, models.EventTicketSold, sold, "")

	return sold, nil
}

// Cancel voids a booked or sold ticket. Cancellation is terminal and frees
// the seat for rebooking.
func (s *TicketService) Cancel(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.ErrNotFound
	}

	cancelled, err := s.ticketRepo.Cancel(ctx, ticketNumber)
	if err == apperrors.ErrStaleTicketState {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel ticket: %w", err)
	}

	s.publishTicketEvent(ctx, models.EventTicketCancelled, cancelled, "cancelled by staff")

	return cancelled, nil
}

// Get returns a ticket by its number.
func (s *TicketService) Get(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.ErrNotFound
	}

	return ticket, nil
}

// AvailableSeats returns the free seat numbers of a trip in ascending order.
func (s *TicketService) AvailableSeats(ctx context.Context, tripID int64) (*models.AvailableSeatsResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if trip == nil {
		return nil, apperrors.ErrNotFound
	}

	occupied, err := s.ticketRepo.OccupiedSeats(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupied seats: %w", err)
	}

	taken := make(map[int]bool, len(occupied))
	for _, seat := range occupied {
		taken[seat] = true
	}

	available := make([]int, 0, trip.SeatsCount)
	for seat := 1; seat <= trip.SeatsCount; seat++ {
		if !taken[seat] {
			available = append(available, seat)
		}
	}

	return &models.AvailableSeatsResponse{
		TripID:     tripID,
		SeatsCount: trip.SeatsCount,
		Available:  available,
	}, nil
}

// Quote prices the next ticket on a trip without booking it.
func (s *TicketService) Quote(ctx context.Context, tripID int64) (*models.FareQuoteResponse, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	if trip == nil {
		return nil, apperrors.ErrNotFound
	}

	fuel, err := s.fuelRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fuel price: %w", err)
	}
	if fuel == nil {
		return nil, apperrors.ErrNoFuelPrice
	}

	soldCount, err := s.ticketRepo.SoldCount(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sold tickets: %w", err)
	}

	quote := pricing.Calculate(trip.Tariff, trip.Distance, trip.FuelConsumption, fuel.Price, soldCount)

	return &models.FareQuoteResponse{
		TripID:            tripID,
		SoldCount:         soldCount,
		BasePrice:         quote.Base,
		DistanceDiscount:  quote.DistanceDiscount,
		OccupancyDiscount: quote.OccupancyDiscount,
		FinalPrice:        quote.Final,
	}, nil
}

// SweepExpired cancels every booking past its grace period. The per-ticket
// write is conditional on the ticket still being booked, so a booking
// confirmed between the scan and the write is left alone. Row-level failures
// are logged and do not abort the sweep.
func (s *TicketService) SweepExpired(ctx context.Context) (*models.SweepReport, error) {
	booked, err := s.ticketRepo.ListBooked(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked tickets: %w", err)
	}

	report := &models.SweepReport{Examined: len(booked)}
	now := s.now()

	for i := range booked {
		ticket := &booked[i]
		if !ticket.IsExpired(now, s.bookingTTL) {
			continue
		}

		swept, err := s.ticketRepo.CancelIfBooked(ctx, ticket.ID)
		if err != nil {
			logger.WithContext(ctx).Error("Failed to cancel expired booking",
				"error", err,
				"ticket_number", ticket.TicketNumber)
			continue
		}
		if !swept {
			// Confirmed or cancelled concurrently; nothing to do.
			continue
		}

		report.Cancelled++
		ticket.Status = models.TicketCancelled
		s.publishTicketEvent(ctx, models.EventTicketExpired, ticket, "booking grace period exceeded")
	}

	return report, nil
}

func (s *TicketService) publishTicketEvent(ctx context.Context, subject string, ticket *models.Ticket, reason string) {
	event := models.TicketEvent{
		TicketNumber: ticket.TicketNumber,
		TripID:       ticket.TripID,
		SeatNumber:   ticket.SeatNumber,
		Status:       ticket.Status,
		Price:        ticket.Price,
		Reason:       reason,
		Timestamp:    s.now(),
	}

	if err := s.natsClient.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket event",
			"error", err,
			"ticket_number", ticket.TicketNumber,
			"event_type", subject)
	}
}
