package risk

import "github.com/Jaydot33/proppulse-mvp/pkg/oddsmath"

// DefaultBaseline is the uninformed prior probability applied to every prop.
// Known limitation: not derived from historical data.
const DefaultBaseline = 50.0

// Adjust subtracts the risk score from the baseline probability, floored
// at 0 and rounded to 1 decimal place. A risk score of 0 returns the
// baseline unchanged. The result is not capped at 100.
func Adjust(baseline, riskScore float64) float64 {
	adjusted := baseline - riskScore
	if adjusted < 0 {
		adjusted = 0
	}
	return oddsmath.Round1(adjusted)
}
