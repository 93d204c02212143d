package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"vokzal/internal/database"
	apperrors "vokzal/internal/errors"
	"vokzal/internal/messaging"
	"vokzal/internal/models"
	"vokzal/internal/repository"
	"vokzal/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	nats, err := messaging.NewNATSClient(messaging.Config{Enabled: false})
	require.NoError(t, err)

	repos := repository.NewRepositories(&database.DB{DB: db})
	services := service.NewServices(repos, nats, nil, models.DefaultBookingTTL)
	h := NewHandlers(services)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/tickets", h.BookTicket)
		api.GET("/tickets/:number", h.GetTicket)
		api.POST("/tickets/:number/confirm", h.ConfirmTicket)
		api.POST("/tickets/:number/cancel", h.CancelTicket)
		api.GET("/trips/:id/seats", h.GetAvailableSeats)
		api.GET("/trips/:id/quote", h.GetFareQuote)
	}
	return router, mock
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func ticketRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "trip_id", "ticket_number", "seat_number", "status", "booking_time", "sold_time", "price"})
}

func TestBookTicketRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodPost, "/api/tickets", `{"trip_id": "seven"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookTicketSeatConflict(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"number", "date", "tariff", "distance", "fuel_consumption", "seats_count"}).
			AddRow("101", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), "10", "20", "8", 40))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(int64(7), 12).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	w := performRequest(router, http.MethodPost, "/api/tickets", `{"trip_id": 7, "seat_number": 12}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ErrSeatUnavailable.Error())
}

func TestGetTicketNotFound(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ticket_number = $1")).
		WithArgs("missing").
		WillReturnRows(ticketRows())

	w := performRequest(router, http.MethodGet, "/api/tickets/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmExpiredTicketIsGone(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ticket_number = $1")).
		WithArgs("101_01012020_080000_ab12").
		WillReturnRows(ticketRows().
			AddRow(int64(1), int64(7), "101_01012020_080000_ab12", 12, models.TicketBooked,
				time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC), nil, "261.30"))

	w := performRequest(router, http.MethodPost, "/api/tickets/101_01012020_080000_ab12/confirm", "")
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestGetAvailableSeatsRejectsBadID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/trips/abc/seats", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrInvalidSeat, http.StatusBadRequest},
		{fmt.Errorf("%w: days_of_week is malformed", apperrors.ErrValidation), http.StatusBadRequest},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrSeatUnavailable, http.StatusConflict},
		{apperrors.ErrStaleTicketState, http.StatusConflict},
		{apperrors.ErrDuplicateTrip, http.StatusConflict},
		{apperrors.ErrBookingExpired, http.StatusGone},
		{apperrors.ErrNoFuelPrice, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", apperrors.ErrSeatUnavailable), http.StatusConflict},
		{fmt.Errorf("database is down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}
