package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/models"
)

const (
	BLUESKY_API_URL        = "https://bsky.social/xrpc"
	BLUESKY_PUBLIC_API_URL = "https://public.api.bsky.app/xrpc"

	blueskyMaxPageSize     = 100
	blueskyRequestTimeout  = 15 * time.Second
	blueskyTrendingTimeout = 10 * time.Second
)

var (
	blueskyInstance *BlueskyClient
	blueskyOnce     sync.Once
)

// BlueskyClient talks to the AT Protocol XRPC endpoints. Search requires a
// session created from an app password; trending topics are served off the
// public AppView and need no auth.
type BlueskyClient struct {
	Client     *http.Client
	Identifier string
	Password   string

	mu      sync.Mutex
	session *models.BlueskySession
}

func GetBlueskyClient() *BlueskyClient {
	blueskyOnce.Do(func() {
		blueskyInstance = &BlueskyClient{
			Client:     &http.Client{Timeout: blueskyRequestTimeout},
			Identifier: os.Getenv("BLUESKY_IDENTIFIER"),
			Password:   os.Getenv("BLUESKY_APP_PASSWORD"),
		}
	})
	return blueskyInstance
}

func (bc *BlueskyClient) createSession(ctx context.Context) (*models.BlueskySession, error) {
	if bc.Identifier == "" || bc.Password == "" {
		slog.Error("[BlueskyClient] Missing BLUESKY_IDENTIFIER or BLUESKY_APP_PASSWORD in environment variables")
		return nil, fmt.Errorf("[BlueskyClient] Bluesky credentials not set: %w", analysis.ErrConfigurationMissing)
	}

	payload, err := json.Marshal(map[string]string{
		"identifier": bc.Identifier,
		"password":   bc.Password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		BLUESKY_API_URL+"/com.atproto.server.createSession", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	res, err := bc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[BlueskyClient] Bluesky authentication request failed: %w", analysis.ErrUpstreamUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Error("[BlueskyClient] Session creation failed", slog.Int("statusCode", res.StatusCode))
		return nil, blueskyStatusError(res.StatusCode)
	}

	var session models.BlueskySession
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("[BlueskyClient] failed to parse session response: %w", err)
	}

	slog.Info("[BlueskyClient] Session created", slog.String("handle", session.Handle))
	return &session, nil
}

func (bc *BlueskyClient) getSession(ctx context.Context) (*models.BlueskySession, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.session != nil {
		return bc.session, nil
	}
	session, err := bc.createSession(ctx)
	if err != nil {
		return nil, err
	}
	bc.session = session
	return session, nil
}

func (bc *BlueskyClient) dropSession() {
	bc.mu.Lock()
	bc.session = nil
	bc.mu.Unlock()
}

// SearchPosts pages through app.bsky.feed.searchPosts until maxResults posts
// are collected or the cursor runs out. On a 401 the cached session is dropped
// and recreated once before giving up.
func (bc *BlueskyClient) SearchPosts(ctx context.Context, query string, maxResults int, lang string) ([]models.BlueskyPostView, error) {
	var posts []models.BlueskyPostView
	cursor := ""
	refreshed := false

	for len(posts) < maxResults {
		session, err := bc.getSession(ctx)
		if err != nil {
			return nil, err
		}

		limit := maxResults - len(posts)
		if limit > blueskyMaxPageSize {
			limit = blueskyMaxPageSize
		}

		params := url.Values{}
		params.Set("q", query)
		params.Set("limit", strconv.Itoa(limit))
		if cursor != "" {
			params.Set("cursor", cursor)
		}
		if lang != "" {
			params.Set("lang", lang)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			BLUESKY_API_URL+"/app.bsky.feed.searchPosts?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+session.AccessJwt)
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := bc.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("[BlueskyClient] Bluesky search request failed: %w", analysis.ErrUpstreamUnavailable)
		}

		if res.StatusCode == http.StatusUnauthorized && !refreshed {
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			slog.Warn("[BlueskyClient] Session expired, recreating...")
			bc.dropSession()
			refreshed = true
			continue
		}

		if res.StatusCode != http.StatusOK {
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
			slog.Error("[BlueskyClient] Search failed", slog.Int("statusCode", res.StatusCode))
			return nil, blueskyStatusError(res.StatusCode)
		}

		var page models.BlueskySearchResponse
		err = json.NewDecoder(res.Body).Decode(&page)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("[BlueskyClient] failed to parse search response: %w", err)
		}

		posts = append(posts, page.Posts...)
		if page.Cursor == "" || len(page.Posts) == 0 {
			break
		}
		cursor = page.Cursor
	}

	if len(posts) > maxResults {
		posts = posts[:maxResults]
	}
	return posts, nil
}

// GetTrendingTopics fetches the current trending topics from the public
// AppView.
func (bc *BlueskyClient) GetTrendingTopics(ctx context.Context, limit int) ([]models.BlueskyTrendingTopic, error) {
	ctx, cancel := context.WithTimeout(ctx, blueskyTrendingTimeout)
	defer cancel()

	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		BLUESKY_PUBLIC_API_URL+"/app.bsky.unspecced.getTrendingTopics?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	res, err := bc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[BlueskyClient] Bluesky trending request failed: %w", analysis.ErrUpstreamUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Error("[BlueskyClient] Trending fetch failed", slog.Int("statusCode", res.StatusCode))
		return nil, blueskyStatusError(res.StatusCode)
	}

	var trending models.BlueskyTrendingResponse
	if err := json.NewDecoder(res.Body).Decode(&trending); err != nil {
		return nil, fmt.Errorf("[BlueskyClient] failed to parse trending response: %w", err)
	}

	return trending.Topics, nil
}

func blueskyStatusError(statusCode int) error {
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("[BlueskyClient] Bluesky authentication expired: %w", analysis.ErrUpstreamUnavailable)
	case http.StatusTooManyRequests:
		return fmt.Errorf("[BlueskyClient] Bluesky rate limit exceeded: %w", analysis.ErrUpstreamUnavailable)
	default:
		return fmt.Errorf("[BlueskyClient] Bluesky API error (status %d): %w", statusCode, analysis.ErrUpstreamUnavailable)
	}
}
