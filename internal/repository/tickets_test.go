package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vokzal/internal/database"
	apperrors "vokzal/internal/errors"
	"vokzal/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicketRepoMock(t *testing.T) (*TicketRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewTicketRepository(&database.DB{DB: db})
	repo.now = func() time.Time {
		return time.Date(2025, 6, 2, 14, 30, 45, 0, time.UTC)
	}
	return repo, mock
}

func tripLockRows(seatsCount int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"number", "date", "tariff", "distance", "fuel_consumption", "seats_count"}).
		AddRow("101", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), "10", "20", "8", seatsCount)
}

func TestBookComputesPriceInsideTransaction(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(tripLockRows(40))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(7), 12).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM fuel_price WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("50"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tickets WHERE trip_id = $1 AND status = 'sold'")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs(int64(7), sqlmock.AnyArg(), 12, "booked", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_time"}).
			AddRow(int64(1), time.Date(2025, 6, 2, 14, 30, 45, 0, time.UTC)))
	mock.ExpectCommit()

	ticket, err := repo.Book(context.Background(), 7, 12)
	require.NoError(t, err)

	// base 10*20/100 + 8*50 = 402; discounts 15% (20 km) + 20% (25 sold)
	assert.True(t, ticket.Price.Equal(decimal.RequireFromString("261.30")), "price = %s", ticket.Price)
	assert.Equal(t, models.TicketBooked, ticket.Status)
	assert.Regexp(t, `^101_03062025_143045_[0-9a-f]{4}$`, ticket.TicketNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRejectsOutOfRangeSeat(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(tripLockRows(40))
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(tripLockRows(40))
	mock.ExpectRollback()

	_, err := repo.Book(context.Background(), 7, 41)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSeat)

	_, err = repo.Book(context.Background(), 7, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSeat)
}

func TestBookRejectsOccupiedSeat(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(tripLockRows(40))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(7), 12).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Book(context.Background(), 7, 12)
	assert.ErrorIs(t, err, apperrors.ErrSeatUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookFailsWithoutFuelPrice(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(tripLockRows(40))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(7), 12).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM fuel_price WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"price"}))
	mock.ExpectRollback()

	_, err := repo.Book(context.Background(), 7, 12)
	assert.ErrorIs(t, err, apperrors.ErrNoFuelPrice)
}

func TestBookLostRaceMapsToSeatUnavailable(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(tripLockRows(40))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(7), 12).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT price FROM fuel_price WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow("50"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tickets")).
		WithArgs(int64(7), sqlmock.AnyArg(), 12, "booked", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Book(context.Background(), 7, 12)
	assert.ErrorIs(t, err, apperrors.ErrSeatUnavailable)
}

func TestMarkSoldIsConditional(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	cutoff := time.Date(2025, 6, 2, 13, 30, 45, 0, time.UTC)

	// Already sold (or expired past the cutoff): zero rows come back
	mock.ExpectQuery(regexp.QuoteMeta("SET status = 'sold'")).
		WithArgs("101_03062025_143045_ab12", cutoff).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_id", "ticket_number", "seat_number", "status", "booking_time", "sold_time", "price"}))

	_, err := repo.MarkSold(context.Background(), "101_03062025_143045_ab12", cutoff)
	assert.ErrorIs(t, err, apperrors.ErrStaleTicketState)
}

func TestCancelIfBookedSkipsConcurrentlySold(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	query := regexp.QuoteMeta("UPDATE tickets SET status = 'cancelled' WHERE id = $1 AND status = 'booked'")

	mock.ExpectExec(query).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(int64(6)).WillReturnResult(sqlmock.NewResult(0, 0))

	swept, err := repo.CancelIfBooked(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, swept)

	swept, err = repo.CancelIfBooked(context.Background(), 6)
	assert.NoError(t, err)
	assert.False(t, swept, "a concurrently confirmed ticket must not be overridden")
}

func TestOccupiedSeatsExcludesCancelled(t *testing.T) {
	repo, mock := newTicketRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("status <> 'cancelled'")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(2).AddRow(5).AddRow(9))

	seats, err := repo.OccupiedSeats(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 5, 9}, seats)
}
