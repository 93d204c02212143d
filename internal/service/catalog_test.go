package service

import (
	"context"
	"regexp"
	"testing"

	"vokzal/internal/database"
	apperrors "vokzal/internal/errors"
	"vokzal/internal/models"
	"vokzal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServiceMock(t *testing.T) (*CatalogService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &database.DB{DB: db}
	return NewCatalogService(repository.NewFleetRepository(wrapped), repository.NewRouteRepository(wrapped)), mock
}

func TestCreateBusModelValidation(t *testing.T) {
	svc, _ := newCatalogServiceMock(t)

	_, err := svc.CreateBusModel(context.Background(), &models.CreateBusModelRequest{
		Name:       "Sprinter",
		SeatsCount: 0,
	})
	assert.ErrorContains(t, err, "seats_count")

	_, err = svc.CreateBusModel(context.Background(), &models.CreateBusModelRequest{
		Name:            "Sprinter",
		SeatsCount:      20,
		FuelConsumption: decimal.RequireFromString("-1"),
	})
	assert.ErrorContains(t, err, "fuel_consumption")
}

func TestCreateRouteRejectsBadWeekdays(t *testing.T) {
	svc, _ := newCatalogServiceMock(t)

	for _, days := range []string{"", "0", "8", "1,,3", "mon"} {
		_, err := svc.CreateRoute(context.Background(), &models.CreateRouteRequest{
			Number:     "101",
			DaysOfWeek: days,
			BusModelID: 1,
		})
		assert.ErrorContains(t, err, "days_of_week", "pattern %q", days)
	}
}

func TestCreateRouteUnknownBusModel(t *testing.T) {
	svc, mock := newCatalogServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bus_models WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fuel_consumption", "seats_count"}))

	_, err := svc.CreateRoute(context.Background(), &models.CreateRouteRequest{
		Number:     "101",
		DaysOfWeek: "1,3,5",
		BusModelID: 99,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateBusChecksModelExists(t *testing.T) {
	svc, mock := newCatalogServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bus_models WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fuel_consumption", "seats_count"}).
			AddRow(int64(1), "Sprinter", "8", 20))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO buses")).
		WithArgs(int64(1), "KZ 101 AB").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	bus, err := svc.CreateBus(context.Background(), &models.CreateBusRequest{BusModelID: 1, Number: "KZ 101 AB"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), bus.ID)
}
