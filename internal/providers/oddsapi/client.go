package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Jaydot33/proppulse-mvp/internal/cache"
)

const (
	BaseURL = "https://api.the-odds-api.com/v4"

	// Markets requested from the upstream provider
	Markets = "player_points,player_rebounds,player_assists"
)

// ErrFetch marks any odds fetch failure: transport error, non-2xx response,
// or a payload that does not decode. Callers treat it as "no data available".
var ErrFetch = errors.New("odds fetch failed")

// Client fetches bookmaker odds from The Odds API, memoized through the cache
type Client struct {
	httpClient *http.Client
	store      *cache.Store
	apiKey     string
	baseURL    string
}

// New creates a new odds client
func New(apiKey string, store *cache.Store) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		store:   store,
		apiKey:  apiKey,
		baseURL: BaseURL,
	}
}

// NewWithBaseURL creates a client pointed at an alternate upstream, for tests
func NewWithBaseURL(apiKey string, store *cache.Store, baseURL string) *Client {
	c := New(apiKey, store)
	c.baseURL = baseURL
	return c
}

// Fetch returns the events for a sport, serving from the cache when an
// unexpired snapshot exists under "odds:{sportKey}". Cache misses hit the
// upstream and store the raw payload verbatim for 300s.
func (c *Client) Fetch(ctx context.Context, sportKey string) ([]Event, error) {
	cacheKey := "odds:" + sportKey

	data, err := c.store.GetOrCompute(ctx, cacheKey, cache.PropsTTL, func(ctx context.Context) ([]byte, error) {
		return c.fetchRaw(ctx, sportKey)
	})
	if err != nil {
		return nil, err
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrFetch, err)
	}

	return events, nil
}

// fetchRaw issues the upstream GET and returns the raw JSON body
func (c *Client) fetchRaw(ctx context.Context, sportKey string) ([]byte, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", "us")
	params.Set("markets", Markets)
	params.Set("oddsFormat", "decimal")

	reqURL := fmt.Sprintf("%s/sports/%s/odds/?%s", c.baseURL, sportKey, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d, body=%s", ErrFetch, resp.StatusCode, string(body))
	}

	// Validate before caching so a malformed payload is never served
	// verbatim from the cache later
	var events []Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", ErrFetch, err)
	}

	return body, nil
}
