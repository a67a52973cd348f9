// Package trending surfaces Bluesky trending topics, categorized and
// optionally enriched with a sentiment snapshot per topic.
package trending

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/cache"
	"github.com/synsight/synsight/internal/models"
)

const (
	maxTopics           = 15
	cacheTTL            = 5 * time.Minute
	rawCacheKey         = "trending:topics"
	enrichedCacheKey    = "trending:topics:enriched"
	topicAnalysisPosts  = 50
	maxTopicSamplePosts = 3
)

// TopicSource yields the platform's current trending list. Satisfied by
// clients.BlueskyClient.
type TopicSource interface {
	GetTrendingTopics(ctx context.Context, limit int) ([]models.BlueskyTrendingTopic, error)
}

// BlueskyAnalyzer runs a sentiment analysis over Bluesky posts for a query.
// Satisfied by analysis.Orchestrator.
type BlueskyAnalyzer interface {
	AnalyzeBluesky(ctx context.Context, query string, maxResults int, opts analysis.Options) (*models.AnalysisResult, error)
}

type Service struct {
	source   TopicSource
	analyzer BlueskyAnalyzer
	cache    cache.TTLCache
}

func NewService(source TopicSource, analyzer BlueskyAnalyzer, ttlCache cache.TTLCache) *Service {
	return &Service{source: source, analyzer: analyzer, cache: ttlCache}
}

// GetTopics returns the current trending topics, categorized but without
// sentiment data. Results are cached for five minutes.
func (s *Service) GetTopics(ctx context.Context, category string) ([]models.TrendingTopic, error) {
	var topics []models.TrendingTopic
	hit, err := s.cache.Get(ctx, rawCacheKey, &topics)
	if err != nil {
		slog.Warn("[Trending] Cache read failed", slog.String("error", err.Error()))
	}
	if !hit {
		topics, err = s.fetchTopics(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, rawCacheKey, topics, cacheTTL); err != nil {
			slog.Warn("[Trending] Cache write failed", slog.String("error", err.Error()))
		}
	}

	return filterByCategory(topics, category), nil
}

// GetTopicsWithSentiment enriches each trending topic with a sentiment
// snapshot built from recent Bluesky posts. A topic whose analysis fails is
// kept as a degraded neutral entry rather than dropped. Cached separately
// from the raw list.
func (s *Service) GetTopicsWithSentiment(ctx context.Context, category string) ([]models.TrendingTopic, error) {
	var topics []models.TrendingTopic
	hit, err := s.cache.Get(ctx, enrichedCacheKey, &topics)
	if err != nil {
		slog.Warn("[Trending] Cache read failed", slog.String("error", err.Error()))
	}
	if hit {
		return filterByCategory(topics, category), nil
	}

	raw, err := s.fetchTopics(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("[Trending] Analyzing trending topics", slog.Int("count", len(raw)))
	topics = make([]models.TrendingTopic, 0, len(raw))
	for _, topic := range raw {
		topics = append(topics, s.enrichTopic(ctx, topic))
	}

	if err := s.cache.Set(ctx, enrichedCacheKey, topics, cacheTTL); err != nil {
		slog.Warn("[Trending] Cache write failed", slog.String("error", err.Error()))
	}

	return filterByCategory(topics, category), nil
}

func (s *Service) fetchTopics(ctx context.Context) ([]models.TrendingTopic, error) {
	raw, err := s.source.GetTrendingTopics(ctx, maxTopics)
	if err != nil {
		return nil, fmt.Errorf("Trending Error: %w", err)
	}
	if len(raw) > maxTopics {
		raw = raw[:maxTopics]
	}

	topics := make([]models.TrendingTopic, 0, len(raw))
	for _, t := range raw {
		title := t.Topic
		if !strings.HasPrefix(title, "#") {
			title = "#" + title
		}
		topics = append(topics, models.TrendingTopic{
			Title:    title,
			RawTitle: strings.TrimPrefix(t.Topic, "#"),
			Category: CategorizeTopic(t.Topic),
			Count:    t.Count,
		})
	}
	return topics, nil
}

func (s *Service) enrichTopic(ctx context.Context, topic models.TrendingTopic) models.TrendingTopic {
	result, err := s.analyzer.AnalyzeBluesky(ctx, topic.RawTitle, topicAnalysisPosts, analysis.Options{
		Timeframe: "last24hours",
		Language:  "en",
	})
	if err != nil {
		slog.Warn("[Trending] Topic analysis failed, keeping degraded entry",
			slog.String("topic", topic.Title),
			slog.String("error", err.Error()))
		topic.Sentiment = models.SentimentNeutral
		topic.Percentages = &models.SentimentPercentages{}
		topic.Distribution = &models.SentimentDistribution{}
		return topic
	}

	topic.Sentiment = result.OverallSentiment
	topic.Percentages = &result.Percentages
	topic.Distribution = &result.SentimentDistribution
	if topic.Count == 0 {
		topic.Count = result.TotalAnalyzed
	}

	for _, p := range result.SamplePosts {
		topic.Engagement += p.Metrics.Likes + p.Metrics.Reposts
	}
	if len(result.SamplePosts) > maxTopicSamplePosts {
		topic.Posts = result.SamplePosts[:maxTopicSamplePosts]
	} else {
		topic.Posts = result.SamplePosts
	}

	return topic
}

func filterByCategory(topics []models.TrendingTopic, category string) []models.TrendingTopic {
	if category == "" || strings.EqualFold(category, "all") {
		return topics
	}
	filtered := make([]models.TrendingTopic, 0, len(topics))
	for _, t := range topics {
		if strings.EqualFold(t.Category, category) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
