package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/synsight/synsight/internal/models"
	"github.com/synsight/synsight/internal/sentiment"
)

const (
	maxSamplePosts        = 10
	maxSamplesPerPlatform = 5
	defaultMaxResults     = 100
	multiPlatformBluesky  = "bluesky"
	multiPlatformReddit   = "reddit"
)

// Options tune a single analysis run.
type Options struct {
	Timeframe string
	Language  string
}

// Fetcher produces a flat, normalized post list for a query. Implementations
// live in internal/platforms.
type Fetcher interface {
	Platform() string
	Search(ctx context.Context, query string, maxResults int, opts Options) ([]models.Post, error)
}

// Orchestrator sequences fetch, filter, score, keyword extraction, time
// bucketing and insight generation for each platform, and merges the
// two-platform concurrent variant.
type Orchestrator struct {
	scorer  sentiment.Scorer
	twitter Fetcher
	reddit  Fetcher
	bluesky Fetcher
}

func NewOrchestrator(scorer sentiment.Scorer, twitter, reddit, bluesky Fetcher) *Orchestrator {
	return &Orchestrator{
		scorer:  scorer,
		twitter: twitter,
		reddit:  reddit,
		bluesky: bluesky,
	}
}

// AnalyzeText classifies a single piece of text directly, without fetching.
func (o *Orchestrator) AnalyzeText(ctx context.Context, text string) (*models.SentimentResult, error) {
	result, err := o.scorer.ScoreText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("Text Analysis Error: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) AnalyzeTwitter(ctx context.Context, query string, maxResults int, opts Options) (*models.AnalysisResult, error) {
	result, err := o.analyzePlatform(ctx, o.twitter, query, maxResults, opts)
	if err != nil {
		return nil, fmt.Errorf("Twitter Analysis Error: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) AnalyzeReddit(ctx context.Context, query string, maxResults int, opts Options) (*models.AnalysisResult, error) {
	result, err := o.analyzePlatform(ctx, o.reddit, query, maxResults, opts)
	if err != nil {
		return nil, fmt.Errorf("Reddit Analysis Error: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) AnalyzeBluesky(ctx context.Context, query string, maxResults int, opts Options) (*models.AnalysisResult, error) {
	result, err := o.analyzePlatform(ctx, o.bluesky, query, maxResults, opts)
	if err != nil {
		return nil, fmt.Errorf("Bluesky Analysis Error: %w", err)
	}
	return result, nil
}

func (o *Orchestrator) analyzePlatform(ctx context.Context, f Fetcher, query string, maxResults int, opts Options) (*models.AnalysisResult, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	platform := f.Platform()

	posts, err := f.Search(ctx, query, maxResults, opts)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("no %s posts found for query %q: %w", platform, query, ErrNoDataFound)
	}

	filtered := FilterPosts(posts, query, FilterOptions{Language: opts.Language})
	if len(filtered) == 0 {
		return nil, fmt.Errorf("all %d %s posts were rejected by content filtering: %w", len(posts), platform, ErrNoValidContent)
	}

	slog.Info("[Orchestrator] Scoring filtered posts",
		slog.String("platform", platform),
		slog.Int("fetched", len(posts)),
		slog.Int("filtered", len(filtered)))

	texts := make([]string, len(filtered))
	for i, p := range filtered {
		texts[i] = p.Text
	}

	bulk, err := o.scorer.ScoreBulk(ctx, texts)
	if err != nil {
		return nil, err
	}

	keywords := ExtractKeywords(texts, bulk.IndividualResults)
	hours := BucketByHour(filtered)
	insights := GenerateInsights(bulk.SentimentDistribution, bulk.TotalAnalyzed, keywords, hours)

	return &models.AnalysisResult{
		Source:                platform,
		Query:                 query,
		Timestamp:             time.Now(),
		OverallSentiment:      bulk.OverallSentiment,
		AverageScores:         bulk.AverageScores,
		SentimentDistribution: bulk.SentimentDistribution,
		Percentages:           roundPercentages(bulk.SentimentDistribution, bulk.TotalAnalyzed),
		TotalAnalyzed:         bulk.TotalAnalyzed,
		Insights:              insights,
		TopKeywords:           keywords,
		SentimentOverTime:     hours,
		SamplePosts:           samplePosts(filtered, bulk.IndividualResults, platform, maxSamplePosts),
		PlatformBreakdown: []models.PlatformBreakdown{{
			Platform:              platformTitle(platform),
			TotalPosts:            bulk.TotalAnalyzed,
			SentimentDistribution: bulk.SentimentDistribution,
		}},
	}, nil
}

// AnalyzeMultiPlatform runs Bluesky and Reddit concurrently with settle-both
// semantics: a failure on one platform never cancels the other, and the call
// fails only when both do.
func (o *Orchestrator) AnalyzeMultiPlatform(ctx context.Context, query string, maxResults int, opts Options) (*models.AnalysisResult, error) {
	var (
		wg                    sync.WaitGroup
		blueskyRes, redditRes *models.AnalysisResult
		blueskyErr, redditErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		blueskyRes, blueskyErr = o.AnalyzeBluesky(ctx, query, maxResults, opts)
	}()
	go func() {
		defer wg.Done()
		redditRes, redditErr = o.AnalyzeReddit(ctx, query, maxResults, opts)
	}()
	wg.Wait()

	if blueskyErr != nil && redditErr != nil {
		return nil, fmt.Errorf("Multi-platform Analysis Error: all platforms failed (bluesky: %v; reddit: %v): %w",
			blueskyErr, redditErr, ErrNoDataFound)
	}

	platformErrors := make(map[string]string)
	if blueskyErr != nil {
		slog.Warn("[Orchestrator] Bluesky leg failed, continuing with Reddit",
			slog.String("error", blueskyErr.Error()))
		platformErrors[multiPlatformBluesky] = blueskyErr.Error()
	}
	if redditErr != nil {
		slog.Warn("[Orchestrator] Reddit leg failed, continuing with Bluesky",
			slog.String("error", redditErr.Error()))
		platformErrors[multiPlatformReddit] = redditErr.Error()
	}

	merged := mergeResults(query, blueskyRes, redditRes)
	merged.PlatformErrors = platformErrors

	if len(platformErrors) == 1 {
		for platform, reason := range platformErrors {
			merged.Insights.Degradation = fmt.Sprintf("%s analysis unavailable (%s); results reflect a single platform", platformTitle(platform), reason)
		}
	}

	return merged, nil
}

func mergeResults(query string, bluesky, reddit *models.AnalysisResult) *models.AnalysisResult {
	merged := &models.AnalysisResult{
		Source:    models.SourceMultiPlatform,
		Query:     query,
		Timestamp: time.Now(),
	}

	var compounds []float64
	var scores []models.SentimentScores

	for _, res := range []*models.AnalysisResult{bluesky, reddit} {
		if res == nil {
			continue
		}
		merged.TotalAnalyzed += res.TotalAnalyzed
		merged.SentimentDistribution.Positive += res.SentimentDistribution.Positive
		merged.SentimentDistribution.Negative += res.SentimentDistribution.Negative
		merged.SentimentDistribution.Neutral += res.SentimentDistribution.Neutral
		merged.PlatformBreakdown = append(merged.PlatformBreakdown, res.PlatformBreakdown...)

		samples := res.SamplePosts
		if len(samples) > maxSamplesPerPlatform {
			samples = samples[:maxSamplesPerPlatform]
		}
		merged.SamplePosts = append(merged.SamplePosts, samples...)

		compounds = append(compounds, res.AverageScores.Compound)
		scores = append(scores, res.AverageScores)
	}

	merged.Percentages = roundPercentages(merged.SentimentDistribution, merged.TotalAnalyzed)
	merged.AverageScores = meanScores(scores)

	// Combined polarity is the mean of per-platform compound scores, not a
	// re-score of the merged post set.
	var compoundSum float64
	for _, c := range compounds {
		compoundSum += c
	}
	avgCompound := 0.0
	if len(compounds) > 0 {
		avgCompound = compoundSum / float64(len(compounds))
	}
	merged.OverallSentiment = sentiment.Classify(avgCompound)

	merged.TopKeywords = mergeKeywords(bluesky, reddit)
	merged.Insights = multiPlatformInsights(merged, bluesky, reddit)

	return merged
}

func mergeKeywords(bluesky, reddit *models.AnalysisResult) []models.Keyword {
	merged := make(map[string]*models.Keyword)
	var order []string

	for _, res := range []*models.AnalysisResult{bluesky, reddit} {
		if res == nil {
			continue
		}
		for _, kw := range res.TopKeywords {
			if existing, ok := merged[kw.Keyword]; ok {
				existing.Count += kw.Count
				continue
			}
			copied := kw
			merged[kw.Keyword] = &copied
			order = append(order, kw.Keyword)
		}
	}

	keywords := make([]models.Keyword, 0, len(merged))
	for _, word := range order {
		keywords = append(keywords, *merged[word])
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func multiPlatformInsights(merged *models.AnalysisResult, bluesky, reddit *models.AnalysisResult) models.Insights {
	var insights models.Insights

	reception := "mixed reception"
	if merged.Percentages.Positive >= 60 {
		reception = "strong public reception"
	}
	insights.Overall = fmt.Sprintf("Overall %s sentiment (%d%%) indicates %s",
		merged.OverallSentiment, merged.Percentages.Positive, reception)

	if bluesky != nil && reddit != nil {
		insights.PlatformComparison = fmt.Sprintf("Reddit discussions more neutral (%d%%) compared to Bluesky (%d%%)",
			reddit.Percentages.Neutral, bluesky.Percentages.Neutral)
	}

	for i, kw := range merged.TopKeywords {
		if i == 3 {
			break
		}
		insights.TopDrivers = append(insights.TopDrivers, fmt.Sprintf("%s (%s)", kw.Keyword, kw.Sentiment))
	}

	return insights
}

func meanScores(scores []models.SentimentScores) models.SentimentScores {
	if len(scores) == 0 {
		return models.SentimentScores{}
	}
	var sum models.SentimentScores
	for _, s := range scores {
		sum.Positive += s.Positive
		sum.Negative += s.Negative
		sum.Neutral += s.Neutral
		sum.Compound += s.Compound
	}
	n := float64(len(scores))
	return models.SentimentScores{
		Positive: sum.Positive / n,
		Negative: sum.Negative / n,
		Neutral:  sum.Neutral / n,
		Compound: sum.Compound / n,
	}
}

// roundPercentages rounds each class independently. The three values can sum
// anywhere in [98,102]; downstream consumers receive the raw rounded values.
func roundPercentages(dist models.SentimentDistribution, total int) models.SentimentPercentages {
	if total <= 0 {
		return models.SentimentPercentages{}
	}
	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(total) * 100))
	}
	return models.SentimentPercentages{
		Positive: pct(dist.Positive),
		Negative: pct(dist.Negative),
		Neutral:  pct(dist.Neutral),
	}
}

func samplePosts(posts []models.Post, results []models.SentimentResult, platform string, limit int) []models.SamplePost {
	if len(posts) > limit {
		posts = posts[:limit]
	}

	samples := make([]models.SamplePost, 0, len(posts))
	for i, p := range posts {
		sample := models.SamplePost{
			Text:      p.Text,
			Platform:  platform,
			CreatedAt: p.CreatedAt,
			Metrics:   p.Metrics,
		}
		if i < len(results) {
			sample.Sentiment = results[i].Sentiment
			sample.Confidence = int(math.Round(results[i].Confidence * 100))
		}
		samples = append(samples, sample)
	}
	return samples
}

func platformTitle(platform string) string {
	switch platform {
	case models.SourceTwitter:
		return "Twitter"
	case models.SourceReddit:
		return "Reddit"
	case models.SourceBluesky:
		return "Bluesky"
	default:
		return platform
	}
}
