package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateWorkedExample(t *testing.T) {
	// tariff=10, distance=20, consumption=8, fuel=50, sold=25:
	// base = 10*20/100 + 8*50 = 402, discount = 15% + 20% = 35%,
	// final = 402 * 0.65 = 261.30
	q := Calculate(dec("10"), dec("20"), dec("8"), dec("50"), 25)

	assert.True(t, q.Base.Equal(dec("402")), "base = %s", q.Base)
	assert.True(t, q.TotalDiscount.Equal(dec("0.35")), "discount = %s", q.TotalDiscount)
	assert.True(t, q.Final.Equal(dec("261.30")), "final = %s", q.Final)
}

func TestBasePrice(t *testing.T) {
	base := BasePrice(dec("12.50"), dec("150"), dec("9.5"), dec("54.20"))
	// 12.50*150/100 + 9.5*54.20 = 18.75 + 514.90 = 533.65
	assert.True(t, base.Equal(dec("533.65")), "base = %s", base)
}

func TestDistanceDiscountBoundary(t *testing.T) {
	assert.True(t, DistanceDiscount(dec("25")).Equal(dec("0.15")), "25 km is inclusive")
	assert.True(t, DistanceDiscount(dec("24.99")).Equal(dec("0.15")))
	assert.True(t, DistanceDiscount(dec("25.01")).IsZero())
	assert.True(t, DistanceDiscount(dec("400")).IsZero())
}

func TestOccupancyDiscountTiers(t *testing.T) {
	cases := []struct {
		sold int
		want string
	}{
		{0, "0"},
		{9, "0"},
		{10, "0.10"},
		{19, "0.10"},
		{20, "0.20"},
		{30, "0.30"},
		{40, "0.40"},
		{49, "0.40"},
		{50, "0.50"},
		{120, "0.50"},
	}

	for _, tc := range cases {
		got := OccupancyDiscount(tc.sold)
		assert.True(t, got.Equal(dec(tc.want)), "sold=%d: got %s, want %s", tc.sold, got, tc.want)
	}
}

func TestFinalPriceNonIncreasingAcrossTiers(t *testing.T) {
	prev := decimal.NewFromInt(1 << 30)
	for sold := 0; sold <= 60; sold++ {
		q := Calculate(dec("10"), dec("100"), dec("8"), dec("50"), sold)
		assert.True(t, q.Final.LessThanOrEqual(prev),
			"price rose at sold=%d: %s > %s", sold, q.Final, prev)
		prev = q.Final
	}
}

func TestFinalPriceNeverNegative(t *testing.T) {
	// 15% + 50% = 65% stays positive
	q := Calculate(dec("10"), dec("20"), dec("8"), dec("50"), 50)
	assert.False(t, q.Final.IsNegative())
	assert.True(t, q.Final.Equal(dec("140.70")), "final = %s", q.Final)

	// A zero base price cannot go below zero however large the discount
	q = Calculate(dec("0"), dec("20"), dec("0"), dec("50"), 50)
	assert.True(t, q.Final.IsZero())
	assert.True(t, q.TotalDiscount.Equal(dec("0.65")))
}

func TestCalculateRoundsToCents(t *testing.T) {
	// base = 3*33/100 + 0 = 0.99; 10% off = 0.891 -> 0.89
	q := Calculate(dec("3"), dec("33"), dec("0"), dec("0"), 10)
	assert.True(t, q.Final.Equal(dec("0.89")), "final = %s", q.Final)
}
