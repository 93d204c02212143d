package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vokzal/internal/database"
	apperrors "vokzal/internal/errors"
	"vokzal/internal/models"
	"vokzal/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketRepository struct {
	db  *database.DB
	now func() time.Time
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db, now: time.Now}
}

// newTicketNumber keeps the human-readable route/date/time prefix and appends
// a random suffix so same-second bookings on one route cannot collide.
func newTicketNumber(routeNumber string, date, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%s",
		routeNumber, date.Format("02012006"), now.Format("150405"), uuid.New().String()[:4])
}

// Book reserves a seat in a single transaction: the trip row is locked FOR
// UPDATE to serialize bookings on the same trip, the seat and capacity are
// checked, the fare is computed from the sold count and current fuel price,
// and the ticket is inserted in booked state. If a concurrent booking slips
// past the lock anyway, the partial unique index rejects it and the caller
// gets ErrSeatUnavailable.
func (r *TicketRepository) Book(ctx context.Context, tripID int64, seatNumber int) (*models.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		routeNumber     string
		tripDate        time.Time
		tariff          decimal.Decimal
		distance        decimal.Decimal
		fuelConsumption decimal.Decimal
		seatsCount      int
	)

	lockQuery := `
		SELECT r.number, t.date, r.tariff, r.distance, bm.fuel_consumption, bm.seats_count
		FROM trips t
		JOIN routes r ON r.id = t.route_id
		JOIN buses b ON b.id = t.bus_id
		JOIN bus_models bm ON bm.id = b.bus_model_id
		WHERE t.id = $1
		FOR UPDATE OF t`

	err = tx.QueryRowContext(ctx, lockQuery, tripID).Scan(
		&routeNumber, &tripDate, &tariff, &distance, &fuelConsumption, &seatsCount)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if seatNumber < 1 || seatNumber > seatsCount {
		return nil, apperrors.ErrInvalidSeat
	}

	var occupied bool
	occupiedQuery := `
		SELECT EXISTS(
			SELECT 1 FROM tickets
			WHERE trip_id = $1 AND seat_number = $2 AND status <> 'cancelled')`
	if err := tx.QueryRowContext(ctx, occupiedQuery, tripID, seatNumber).Scan(&occupied); err != nil {
		return nil, err
	}
	if occupied {
		return nil, apperrors.ErrSeatUnavailable
	}

	var fuelPrice decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT price FROM fuel_price WHERE id = 1`).Scan(&fuelPrice)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNoFuelPrice
	}
	if err != nil {
		return nil, err
	}

	var soldCount int
	soldQuery := `SELECT COUNT(*) FROM tickets WHERE trip_id = $1 AND status = 'sold'`
	if err := tx.QueryRowContext(ctx, soldQuery, tripID).Scan(&soldCount); err != nil {
		return nil, err
	}

	quote := pricing.Calculate(tariff, distance, fuelConsumption, fuelPrice, soldCount)

	ticket := &models.Ticket{
		TripID:       tripID,
		TicketNumber: newTicketNumber(routeNumber, tripDate, r.now()),
		SeatNumber:   seatNumber,
		Status:       models.TicketBooked,
		Price:        quote.Final,
	}

	insertQuery := `
		INSERT INTO tickets (trip_id, ticket_number, seat_number, status, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, booking_time`

	err = tx.QueryRowContext(ctx, insertQuery,
		ticket.TripID, ticket.TicketNumber, ticket.SeatNumber, ticket.Status, ticket.Price,
	).Scan(&ticket.ID, &ticket.BookingTime)
	if isUniqueViolation(err) {
		return nil, apperrors.ErrSeatUnavailable
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrSeatUnavailable
		}
		return nil, err
	}

	return ticket, nil
}

func (r *TicketRepository) GetByNumber(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		SELECT id, trip_id, ticket_number, seat_number, status, booking_time, sold_time, price
		FROM tickets
		WHERE ticket_number = $1`

	err := r.db.QueryRowContext(ctx, query, ticketNumber).Scan(
		&ticket.ID,
		&ticket.TripID,
		&ticket.TicketNumber,
		&ticket.SeatNumber,
		&ticket.Status,
		&ticket.BookingTime,
		&ticket.SoldTime,
		&ticket.Price,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return ticket, err
}

// MarkSold confirms a booking with a conditional write: the update applies
// only while the ticket is still booked and not past the expiry cutoff.
// Zero rows affected means the state moved under us.
func (r *TicketRepository) MarkSold(ctx context.Context, ticketNumber string, bookedAfter time.Time) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		UPDATE tickets
		SET status = 'sold', sold_time = NOW()
		WHERE ticket_number = $1 AND status = 'booked' AND booking_time > $2
		RETURNING id, trip_id, ticket_number, seat_number, status, booking_time, sold_time, price`

	err := r.db.QueryRowContext(ctx, query, ticketNumber, bookedAfter).Scan(
		&ticket.ID,
		&ticket.TripID,
		&ticket.TicketNumber,
		&ticket.SeatNumber,
		&ticket.Status,
		&ticket.BookingTime,
		&ticket.SoldTime,
		&ticket.Price,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrStaleTicketState
	}

	return ticket, err
}

// Cancel moves a booked or sold ticket to cancelled, freeing its seat.
func (r *TicketRepository) Cancel(ctx context.Context, ticketNumber string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `
		UPDATE tickets
		SET status = 'cancelled'
		WHERE ticket_number = $1 AND status <> 'cancelled'
		RETURNING id, trip_id, ticket_number, seat_number, status, booking_time, sold_time, price`

	err := r.db.QueryRowContext(ctx, query, ticketNumber).Scan(
		&ticket.ID,
		&ticket.TripID,
		&ticket.TicketNumber,
		&ticket.SeatNumber,
		&ticket.Status,
		&ticket.BookingTime,
		&ticket.SoldTime,
		&ticket.Price,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrStaleTicketState
	}

	return ticket, err
}

// CancelIfBooked is the sweep's compare-and-swap: it cancels only if the
// ticket is still booked at write time, so a concurrent confirmation wins.
func (r *TicketRepository) CancelIfBooked(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE tickets SET status = 'cancelled' WHERE id = $1 AND status = 'booked'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// ListBooked returns all tickets still in booked state, oldest first.
// The sweeper applies the expiry predicate to each.
func (r *TicketRepository) ListBooked(ctx context.Context) ([]models.Ticket, error) {
	query := `
		SELECT id, trip_id, ticket_number, seat_number, status, booking_time, sold_time, price
		FROM tickets
		WHERE status = 'booked'
		ORDER BY booking_time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.TripID,
			&ticket.TicketNumber,
			&ticket.SeatNumber,
			&ticket.Status,
			&ticket.BookingTime,
			&ticket.SoldTime,
			&ticket.Price,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

// OccupiedSeats returns the seat numbers of all non-cancelled tickets on a
// trip, ascending. Cancelled tickets free their seats for reuse.
func (r *TicketRepository) OccupiedSeats(ctx context.Context, tripID int64) ([]int, error) {
	query := `
		SELECT seat_number FROM tickets
		WHERE trip_id = $1 AND status <> 'cancelled'
		ORDER BY seat_number`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

// SoldCount returns the number of sold tickets on a trip.
func (r *TicketRepository) SoldCount(ctx context.Context, tripID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tickets WHERE trip_id = $1 AND status = 'sold'`

	err := r.db.QueryRowContext(ctx, query, tripID).Scan(&count)
	return count, err
}
