package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_NoCredentialDegradesToZero(t *testing.T) {
	s := New("")

	result := s.Score(context.Background(), "LeBron James")

	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Tweets)
	assert.NotNil(t, result.Tweets)
}

func TestScore_UpstreamFailureDegradesToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewWithSearchURL("token", srv.URL)

	result := s.Score(context.Background(), "LeBron James")

	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Tweets)
}

func TestScore_QueryShape(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	s := NewWithSearchURL("token", srv.URL)
	s.Score(context.Background(), "Jayson Tatum")

	assert.Equal(t, "Bearer token", gotAuth)
	assert.Contains(t, gotQuery, "Jayson Tatum")
	assert.Contains(t, gotQuery, "injury OR practice OR questionable OR load OR rest")
	assert.Contains(t, gotQuery, "from:wojespn")
	assert.Contains(t, gotQuery, "-is:retweet")
}

func TestScoreTexts_EmptyIsZero(t *testing.T) {
	s := New("token")

	result := s.scoreTexts(nil)

	assert.Zero(t, result.RiskScore)
	assert.Empty(t, result.Tweets)
}

func TestScoreTexts_NegativeTextRaisesRisk(t *testing.T) {
	s := New("token")

	result := s.scoreTexts([]string{
		"Serious injury setback, ruled out tonight, terrible news for his status",
	})

	require.Len(t, result.Tweets, 1)
	assert.Greater(t, result.RiskScore, 0.0)
	assert.LessOrEqual(t, result.RiskScore, 100.0)
	assert.Greater(t, result.Tweets[0].Score, 0.0)
}

func TestScoreTexts_PositiveTextContributesNothing(t *testing.T) {
	s := New("token")

	result := s.scoreTexts([]string{
		"Great news: fully healthy, excellent practice, no concerns at all",
	})

	require.Len(t, result.Tweets, 1)
	assert.Zero(t, result.RiskScore)
	assert.Zero(t, result.Tweets[0].Score)
}

func TestScoreTexts_AveragesOverItemCount(t *testing.T) {
	s := New("token")

	negative := "Devastating injury, out indefinitely, awful blow"
	neutral := "The team plays at home on Tuesday"

	solo := s.scoreTexts([]string{negative})
	diluted := s.scoreTexts([]string{negative, neutral, neutral})

	// Same negative signal averaged over more items yields a lower score
	assert.Greater(t, solo.RiskScore, diluted.RiskScore)
}

func TestScoreTexts_TruncatesTweetText(t *testing.T) {
	s := New("token")

	long := strings.Repeat("injury doubtful bad news ", 20)
	result := s.scoreTexts([]string{long})

	require.Len(t, result.Tweets, 1)
	assert.LessOrEqual(t, utf8.RuneCountInString(result.Tweets[0].Text), 100)
}
