package service

import (
	"context"
	"regexp"
	"testing"

	"vokzal/internal/database"
	apperrors "vokzal/internal/errors"
	"vokzal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFuelServiceMock(t *testing.T) (*FuelService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewFuelService(repository.NewFuelPriceRepository(&database.DB{DB: db})), mock
}

func TestGetFuelPriceUnset(t *testing.T) {
	svc, mock := newFuelServiceMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fuel_price")).
		WillReturnRows(sqlmock.NewRows([]string{"price", "updated_at"}))

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoFuelPrice)
}

func TestSetFuelPriceRejectsNonPositive(t *testing.T) {
	svc, _ := newFuelServiceMock(t)

	_, err := svc.Set(context.Background(), decimal.Zero)
	assert.ErrorContains(t, err, "positive")

	_, err = svc.Set(context.Background(), decimal.RequireFromString("-5"))
	assert.ErrorContains(t, err, "positive")
}
