package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"github.com/synsight/synsight/internal/analysis"
)

const twitterMaxPageSize = 100

var (
	twitterInstance *TwitterClient
	twitterOnce     sync.Once
)

type bearerAuthorizer struct {
	Token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.Token)
}

// TwitterClient wraps the v2 recent-search API with app-only bearer auth.
type TwitterClient struct {
	Client *twitter.Client
	Token  string
}

func GetTwitterClient() *TwitterClient {
	twitterOnce.Do(func() {
		token := os.Getenv("TWITTER_BEARER_TOKEN")
		twitterInstance = &TwitterClient{
			Token: token,
			Client: &twitter.Client{
				Authorizer: bearerAuthorizer{Token: token},
				Client:     &http.Client{Timeout: 15 * time.Second},
				Host:       "https://api.twitter.com",
			},
		}
	})
	return twitterInstance
}

// SearchRecent runs a single recent-search request. Retweets are excluded at
// the query level; the content filter downstream catches whatever slips
// through.
func (tc *TwitterClient) SearchRecent(ctx context.Context, query string, maxResults int) ([]*twitter.TweetObj, error) {
	if tc.Token == "" {
		slog.Error("[TwitterClient] Missing TWITTER_BEARER_TOKEN in environment variables")
		return nil, fmt.Errorf("[TwitterClient] TWITTER_BEARER_TOKEN not set: %w", analysis.ErrConfigurationMissing)
	}

	if maxResults > twitterMaxPageSize {
		maxResults = twitterMaxPageSize
	}
	if maxResults < 10 {
		maxResults = 10
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults: maxResults,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldLanguage,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldAuthorID,
		},
	}

	res, err := tc.Client.TweetRecentSearch(ctx, query+" -is:retweet", opts)
	if err != nil {
		slog.Error("[TwitterClient] Recent search failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("[TwitterClient] Twitter search failed: %v: %w", err, analysis.ErrUpstreamUnavailable)
	}

	return res.Raw.Tweets, nil
}
