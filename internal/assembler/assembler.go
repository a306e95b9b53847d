package assembler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Jaydot33/proppulse-mvp/internal/arbitrage"
	"github.com/Jaydot33/proppulse-mvp/internal/cache"
	"github.com/Jaydot33/proppulse-mvp/internal/providers/oddsapi"
	"github.com/Jaydot33/proppulse-mvp/internal/risk"
	"github.com/Jaydot33/proppulse-mvp/internal/sentiment"
	"github.com/Jaydot33/proppulse-mvp/pkg/models"
)

const (
	// MaxEvents limits how many games are scanned per request
	MaxEvents = 5

	// MaxProps limits the returned prop list
	MaxProps = 10
)

// OddsProvider fetches bookmaker events for a sport
type OddsProvider interface {
	Fetch(ctx context.Context, sportKey string) ([]oddsapi.Event, error)
}

// Scorer derives an injury risk result for a player
type Scorer interface {
	Score(ctx context.Context, player string) sentiment.Result
}

// Assembler turns raw bookmaker events into risk-annotated props
type Assembler struct {
	odds   OddsProvider
	scorer Scorer
	store  *cache.Store
}

// New creates an assembler with explicit dependencies
func New(odds OddsProvider, scorer Scorer, store *cache.Store) *Assembler {
	return &Assembler{
		odds:   odds,
		scorer: scorer,
		store:  store,
	}
}

// Assemble builds the annotated prop list for a sport:
// fetch odds (failure propagates), extract one prop per player across the
// whole payload, enrich each with sentiment risk sequentially, cache the
// full list under "{sport}_props", and return at most MaxProps entries.
func (a *Assembler) Assemble(ctx context.Context, sport, sportKey string) ([]models.Prop, error) {
	events, err := a.odds.Fetch(ctx, sportKey)
	if err != nil {
		return nil, err
	}

	if len(events) > MaxEvents {
		events = events[:MaxEvents]
	}

	// One prop per player across all events and books
	seenPlayers := make(map[string]bool)
	props := []models.Prop{}

	for _, event := range events {
		for _, book := range event.Bookmakers {
			for _, market := range book.Markets {
				if !strings.Contains(market.Key, "player") || len(market.Outcomes) < 2 {
					continue
				}

				player := playerName(market.Outcomes[0].Name)
				if player == "" || seenPlayers[player] {
					continue
				}
				seenPlayers[player] = true

				sides := make(map[string]float64, len(market.Outcomes))
				for _, outcome := range market.Outcomes {
					sides[outcomeSide(outcome.Name)] = outcome.Price
				}

				// Sentiment failures never abort assembly; the scorer
				// degrades to zero risk on its own
				result := a.scorer.Score(ctx, player)

				props = append(props, models.Prop{
					Player:       player,
					Prop:         market.Key,
					Line:         market.Outcomes[0].Point,
					Odds:         map[string]map[string]float64{book.Title: sides},
					RiskScore:    result.RiskScore,
					AdjustedProb: risk.Adjust(risk.DefaultBaseline, result.RiskScore),
					Tweets:       result.Tweets,
				})
			}
		}
	}

	a.cacheProps(ctx, sport, props)

	// Side observation only; arbs are served from their own endpoint
	if arbs := arbitrage.Detect(props); len(arbs) > 0 {
		fmt.Printf("✓ found %d arb opportunities for %s\n", len(arbs), sport)
	}

	if len(props) > MaxProps {
		props = props[:MaxProps]
	}

	return props, nil
}

// CachedProps returns the previously assembled list for a sport, if an
// unexpired snapshot exists.
func (a *Assembler) CachedProps(ctx context.Context, sport string) ([]models.Prop, bool) {
	data, ok := a.store.Get(ctx, sport+"_props")
	if !ok {
		return nil, false
	}

	var props []models.Prop
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, false
	}

	return props, true
}

// cacheProps stores the full assembled list, best effort
func (a *Assembler) cacheProps(ctx context.Context, sport string, props []models.Prop) {
	data, err := json.Marshal(props)
	if err != nil {
		return
	}

	a.store.Set(ctx, sport+"_props", data, cache.PropsTTL)
}

// playerName extracts the player from an outcome name like
// "LeBron James - Over"
func playerName(outcomeName string) string {
	return strings.SplitN(outcomeName, " - ", 2)[0]
}

// outcomeSide maps an outcome name to its lower-cased side key. Upstream
// names the side either bare ("Over") or prefixed ("LeBron James - Over");
// taking the last " - " segment collapses both forms so sides line up
// across books.
func outcomeSide(outcomeName string) string {
	segments := strings.Split(outcomeName, " - ")
	return strings.ToLower(segments[len(segments)-1])
}
