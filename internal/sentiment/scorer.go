package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonreiter/govader"

	"github.com/Jaydot33/proppulse-mvp/pkg/models"
	"github.com/Jaydot33/proppulse-mvp/pkg/oddsmath"
)

const (
	searchURL = "https://api.twitter.com/2/tweets/search/recent"

	// Beat writers whose availability reporting moves prop lines
	sourceFilter = "(from:wojespn OR from:ShamsCharania OR from:AdrianDorr OR from:MarcJSpears)"

	maxResults  = 5
	maxTweetLen = 100
)

// Result is the outcome of scoring a player's recent injury chatter.
// A zero Result is the degraded-mode answer, never an error.
type Result struct {
	RiskScore float64
	Tweets    []models.Tweet
}

// Scorer derives an injury risk percentage from recent posts about a player.
// Without a bearer token it always returns zero risk.
type Scorer struct {
	httpClient  *http.Client
	analyzer    *govader.SentimentIntensityAnalyzer
	bearerToken string
	searchURL   string
}

// New creates a scorer. token may be empty, which disables upstream search.
func New(token string) *Scorer {
	return &Scorer{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		analyzer:    govader.NewSentimentIntensityAnalyzer(),
		bearerToken: token,
		searchURL:   searchURL,
	}
}

// NewWithSearchURL creates a scorer pointed at an alternate search endpoint,
// for tests
func NewWithSearchURL(token, url string) *Scorer {
	s := New(token)
	s.searchURL = url
	return s
}

type tweetPayload struct {
	Data []struct {
		Text string `json:"text"`
	} `json:"data"`
}

// Score fetches recent posts mentioning the player alongside availability
// keywords and converts negative sentiment into a risk percentage.
// Failures of any kind degrade to a zero Result: sentiment is an enrichment,
// not a dependency.
func (s *Scorer) Score(ctx context.Context, player string) Result {
	if s.bearerToken == "" {
		return Result{Tweets: []models.Tweet{}}
	}

	texts, err := s.search(ctx, player)
	if err != nil {
		fmt.Printf("tweet error for %s: %v\n", player, err)
		return Result{Tweets: []models.Tweet{}}
	}

	return s.scoreTexts(texts)
}

// scoreTexts maps each text's polarity to a risk contribution and averages.
// Only negative polarity drives risk; neutral and positive texts contribute 0.
func (s *Scorer) scoreTexts(texts []string) Result {
	tweets := make([]models.Tweet, 0, len(texts))
	sum := 0.0

	for _, text := range texts {
		polarity := s.analyzer.PolarityScores(text)

		contribution := 0.0
		if polarity.Compound < 0 {
			contribution = -polarity.Compound
		}

		sum += contribution
		tweets = append(tweets, models.Tweet{
			Text:  truncate(text, maxTweetLen),
			Score: contribution,
		})
	}

	// max(1, n) divisor guards the empty result set
	n := len(tweets)
	if n < 1 {
		n = 1
	}

	return Result{
		RiskScore: oddsmath.Round1(100.0 * sum / float64(n)),
		Tweets:    tweets,
	}
}

// search queries the recent-search endpoint for availability posts about
// the player from the allow-listed sources, excluding reposts.
func (s *Scorer) search(ctx context.Context, player string) ([]string, error) {
	query := fmt.Sprintf("(%s (injury OR practice OR questionable OR load OR rest)) %s -is:retweet",
		player, sourceFilter)

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("tweet.fields", "text,created_at")

	req, err := http.NewRequestWithContext(ctx, "GET", s.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.bearerToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var payload tweetPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	texts := make([]string, 0, len(payload.Data))
	for _, item := range payload.Data {
		texts = append(texts, item.Text)
	}

	return texts, nil
}

// truncate caps a string at n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
