package models

// Tweet is a single scored social post attached to a prop.
// Text is truncated for display; Score is the post's risk contribution in [0,1].
type Tweet struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Prop represents one tradable player prop line with cross-book pricing
// and sentiment-derived risk annotations.
type Prop struct {
	Player string  `json:"player"`
	Prop   string  `json:"prop"`
	Line   float64 `json:"line"`

	// Odds maps bookmaker title -> outcome side ("over"/"under") -> decimal price
	Odds map[string]map[string]float64 `json:"odds"`

	// AdjustedProb is the baseline probability minus the risk score, floored at 0
	AdjustedProb float64 `json:"adjusted_prob"`

	// RiskScore is the injury/availability risk percentage in [0, 100]
	RiskScore float64 `json:"risk_score"`

	Tweets []Tweet `json:"tweets"`
}

// ArbOpportunity is a detected cross-book guaranteed-profit combination.
type ArbOpportunity struct {
	// Prop identifies the line, currently the player name
	Prop string `json:"prop"`

	// Margin is the guaranteed profit percentage
	Margin float64 `json:"margin"`

	// Vig is the combined implied probability as a percentage
	Vig float64 `json:"vig"`
}
