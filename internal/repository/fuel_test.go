package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vokzal/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFuelRepoMock(t *testing.T) (*FuelPriceRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewFuelPriceRepository(&database.DB{DB: db}), mock
}

func TestFuelPriceGetUnset(t *testing.T) {
	repo, mock := newFuelRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT price, updated_at FROM fuel_price WHERE id = 1")).
		WillReturnRows(sqlmock.NewRows([]string{"price", "updated_at"}))

	fp, err := repo.Get(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, fp)
}

func TestFuelPriceReplaceUpserts(t *testing.T) {
	repo, mock := newFuelRepoMock(t)

	updated := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"price", "updated_at"}).AddRow("52.5", updated))

	fp, err := repo.Replace(context.Background(), decimal.RequireFromString("52.5"))
	require.NoError(t, err)
	assert.True(t, fp.Price.Equal(decimal.RequireFromString("52.5")))
	assert.Equal(t, updated, fp.UpdatedAt)
}
