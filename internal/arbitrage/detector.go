package arbitrage

import (
	"sort"

	"github.com/Jaydot33/proppulse-mvp/pkg/models"
	"github.com/Jaydot33/proppulse-mvp/pkg/oddsmath"
)

const (
	// MaxOverround is the combined implied probability ceiling: accepting
	// both sides must leave at least a 2% margin
	MaxOverround = 0.98

	// MaxResults caps the ranked opportunity list
	MaxResults = 3
)

// Detect scans assembled props for cross-book over/under combinations that
// lock in a profit. For each prop it takes the best (highest) over price and
// best under price across all books, prices them as a synthetic two-way
// market, and emits an opportunity when the combined implied probability
// clears MaxOverround. Results are sorted descending by margin and capped
// at MaxResults.
func Detect(props []models.Prop) []models.ArbOpportunity {
	arbs := []models.ArbOpportunity{}

	for _, prop := range props {
		bestOver, hasOver := bestPrice(prop.Odds, "over")
		bestUnder, hasUnder := bestPrice(prop.Odds, "under")

		if !hasOver || !hasUnder {
			continue
		}

		ok, overround, margin := oddsmath.TwoWayArbitrage(bestOver, bestUnder, MaxOverround)
		if !ok {
			continue
		}

		arbs = append(arbs, models.ArbOpportunity{
			Prop:   prop.Player,
			Margin: oddsmath.Round2(margin),
			Vig:    oddsmath.Round1(overround * 100),
		})
	}

	sort.Slice(arbs, func(i, j int) bool {
		return arbs[i].Margin > arbs[j].Margin
	})

	if len(arbs) > MaxResults {
		arbs = arbs[:MaxResults]
	}

	return arbs
}

// bestPrice returns the highest price offered for a side across all books
func bestPrice(odds map[string]map[string]float64, side string) (float64, bool) {
	best := 0.0
	found := false

	for _, sides := range odds {
		price, ok := sides[side]
		if !ok {
			continue
		}
		if !found || price > best {
			best = price
			found = true
		}
	}

	return best, found
}
