package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicketIsExpired(t *testing.T) {
	bookedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ticket := &Ticket{Status: TicketBooked, BookingTime: bookedAt}

	assert.False(t, ticket.IsExpired(bookedAt.Add(59*time.Minute), DefaultBookingTTL))
	assert.False(t, ticket.IsExpired(bookedAt.Add(time.Hour), DefaultBookingTTL), "exactly one hour is not yet expired")
	assert.True(t, ticket.IsExpired(bookedAt.Add(61*time.Minute), DefaultBookingTTL))
}

func TestTicketIsExpiredOnlyWhenBooked(t *testing.T) {
	bookedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	longAfter := bookedAt.Add(48 * time.Hour)

	sold := &Ticket{Status: TicketSold, BookingTime: bookedAt}
	cancelled := &Ticket{Status: TicketCancelled, BookingTime: bookedAt}

	assert.False(t, sold.IsExpired(longAfter, DefaultBookingTTL))
	assert.False(t, cancelled.IsExpired(longAfter, DefaultBookingTTL))
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays("5, 1,3")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, days)

	days, err = ParseWeekdays("7,7,1")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 7}, days, "duplicates collapse")

	_, err = ParseWeekdays("")
	assert.Error(t, err)

	_, err = ParseWeekdays("1,8")
	assert.Error(t, err)

	_, err = ParseWeekdays("mon")
	assert.Error(t, err)
}

func TestRouteRunsOn(t *testing.T) {
	route := &Route{DaysOfWeek: "1,3,5"}
	assert.True(t, route.RunsOn(3))
	assert.False(t, route.RunsOn(4))

	broken := &Route{DaysOfWeek: "x"}
	assert.False(t, broken.RunsOn(1))
}

func TestISOWeekday(t *testing.T) {
	// 2025-06-02 is a Monday, 2025-06-08 a Sunday
	assert.Equal(t, 1, ISOWeekday(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, ISOWeekday(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))
}
