// Package pricing computes ticket fares. All arithmetic is exact decimal:
// fares are money and must not drift through binary floating point.
package pricing

import "github.com/shopspring/decimal"

// Short routes get a flat discount.
var (
	shortRouteMaxDistance = decimal.NewFromInt(25) // km
	shortRouteDiscount    = decimal.RequireFromString("0.15")
)

// Occupancy tiers: a trip with at least Sold tickets sold gets Discount.
// Tiers do not stack; only the highest matching tier applies.
var occupancyTiers = []struct {
	Sold     int
	Discount decimal.Decimal
}{
	{50, decimal.RequireFromString("0.50")},
	{40, decimal.RequireFromString("0.40")},
	{30, decimal.RequireFromString("0.30")},
	{20, decimal.RequireFromString("0.20")},
	{10, decimal.RequireFromString("0.10")},
}

var hundred = decimal.NewFromInt(100)

// Quote is the full price breakdown for one ticket.
type Quote struct {
	Base              decimal.Decimal
	DistanceDiscount  decimal.Decimal
	OccupancyDiscount decimal.Decimal
	TotalDiscount     decimal.Decimal
	Final             decimal.Decimal
}

// BasePrice is tariff*distance/100 + fuelConsumption*fuelPrice.
func BasePrice(tariff, distance, fuelConsumption, fuelPrice decimal.Decimal) decimal.Decimal {
	return tariff.Mul(distance).Div(hundred).Add(fuelConsumption.Mul(fuelPrice))
}

// DistanceDiscount returns the flat short-route discount rate.
func DistanceDiscount(distance decimal.Decimal) decimal.Decimal {
	if distance.LessThanOrEqual(shortRouteMaxDistance) {
		return shortRouteDiscount
	}
	return decimal.Zero
}

// OccupancyDiscount returns the discount rate for the matching tier.
// soldCount is the number of tickets already sold on the trip, not counting
// the ticket being priced.
func OccupancyDiscount(soldCount int) decimal.Decimal {
	for _, tier := range occupancyTiers {
		if soldCount >= tier.Sold {
			return tier.Discount
		}
	}
	return decimal.Zero
}

// Calculate produces the fare quote for the next ticket on a trip. The two
// discounts are additive and may exceed 100%; the final price is floored at
// zero and rounded to two decimal places.
func Calculate(tariff, distance, fuelConsumption, fuelPrice decimal.Decimal, soldCount int) Quote {
	base := BasePrice(tariff, distance, fuelConsumption, fuelPrice)
	distDiscount := DistanceDiscount(distance)
	occDiscount := OccupancyDiscount(soldCount)
	total := distDiscount.Add(occDiscount)

	final := base.Mul(decimal.NewFromInt(1).Sub(total))
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Quote{
		Base:              base,
		DistanceDiscount:  distDiscount,
		OccupancyDiscount: occDiscount,
		TotalDiscount:     total,
		Final:             final.Round(2),
	}
}
