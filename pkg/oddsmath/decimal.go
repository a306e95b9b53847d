package oddsmath

import (
	"fmt"
	"math"
)

// ImpliedProbability converts decimal odds to implied probability
// Decimal 2.00 → 0.50 (50%)
// Decimal 1.50 → 0.667 (66.7%)
func ImpliedProbability(decimal float64) (float64, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0")
	}

	return 1.0 / decimal, nil
}

// Overround sums the implied probabilities of a set of decimal prices
// A fair two-way market sums to 1.0; bookmaker margin pushes it above
func Overround(prices ...float64) (float64, error) {
	if len(prices) == 0 {
		return 0, fmt.Errorf("no prices provided")
	}

	total := 0.0
	for _, price := range prices {
		prob, err := ImpliedProbability(price)
		if err != nil {
			return 0, err
		}
		total += prob
	}

	return total, nil
}

// TwoWayArbitrage checks whether taking both sides at the given decimal
// prices locks in a profit. threshold is the maximum combined implied
// probability to accept (e.g. 0.98 requires at least a 2% margin).
//
// Returns whether an arbitrage exists, the combined implied probability
// (overround), and the profit margin percentage.
func TwoWayArbitrage(price1, price2, threshold float64) (bool, float64, float64) {
	if price1 <= 1.0 || price2 <= 1.0 {
		return false, 0, 0
	}

	overround := (1.0 / price1) + (1.0 / price2)

	if overround >= threshold {
		return false, overround, 0
	}

	margin := (1.0 - overround) * 100.0

	return true, overround, margin
}

// Round1 rounds to 1 decimal place, for percentage display
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to 2 decimal places, for margin display
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
