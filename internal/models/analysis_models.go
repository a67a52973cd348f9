package models

import "time"

const (
	SourceText          = "text"
	SourceTwitter       = "twitter"
	SourceReddit        = "reddit"
	SourceBluesky       = "bluesky"
	SourceMultiPlatform = "multi-platform"
)

// SentimentPercentages holds integer percentages rounded independently per
// class. The sum can legitimately land anywhere in [98,102]; values are never
// renormalized.
type SentimentPercentages struct {
	Positive int `json:"positive" dynamodbav:"positive"`
	Negative int `json:"negative" dynamodbav:"negative"`
	Neutral  int `json:"neutral" dynamodbav:"neutral"`
}

type Keyword struct {
	Keyword   string `json:"keyword" dynamodbav:"keyword"`
	Count     int    `json:"count" dynamodbav:"count"`
	Sentiment string `json:"sentiment" dynamodbav:"sentiment"`
}

type HourBucket struct {
	Hour   int `json:"hour" dynamodbav:"hour"`
	Volume int `json:"volume" dynamodbav:"volume"`
}

type Insights struct {
	Overall            string   `json:"overall,omitempty" dynamodbav:"overall,omitempty"`
	PeakEngagement     string   `json:"peakEngagement,omitempty" dynamodbav:"peak_engagement,omitempty"`
	TopDrivers         []string `json:"topDrivers,omitempty" dynamodbav:"top_drivers,omitempty"`
	PlatformComparison string   `json:"platformComparison,omitempty" dynamodbav:"platform_comparison,omitempty"`
	Degradation        string   `json:"degradation,omitempty" dynamodbav:"degradation,omitempty"`
}

type PlatformBreakdown struct {
	Platform              string                `json:"platform" dynamodbav:"platform"`
	TotalPosts            int                   `json:"totalPosts" dynamodbav:"total_posts"`
	SentimentDistribution SentimentDistribution `json:"sentimentDistribution" dynamodbav:"sentiment_distribution"`
}

// SamplePost is a filtered post annotated with its classification, kept for
// UI display. Confidence is an integer percentage.
type SamplePost struct {
	Text       string      `json:"text" dynamodbav:"text"`
	Platform   string      `json:"platform" dynamodbav:"platform"`
	Sentiment  string      `json:"sentiment" dynamodbav:"sentiment"`
	Confidence int         `json:"confidence" dynamodbav:"confidence"`
	CreatedAt  time.Time   `json:"created_at" dynamodbav:"created_at"`
	Metrics    PostMetrics `json:"metrics" dynamodbav:"metrics"`
}

type DateRange struct {
	Start time.Time `json:"start" dynamodbav:"start"`
	End   time.Time `json:"end" dynamodbav:"end"`
}

type AnalysisOptions struct {
	Timeframe string `json:"timeframe,omitempty" dynamodbav:"timeframe,omitempty"`
	Language  string `json:"language,omitempty" dynamodbav:"language,omitempty"`
}

type AnalysisMetadata struct {
	Timestamp        time.Time       `json:"timestamp" dynamodbav:"timestamp"`
	ProcessingTimeMs int64           `json:"processingTime" dynamodbav:"processing_time_ms"`
	Options          AnalysisOptions `json:"options" dynamodbav:"options"`
}

type AnalysisSentiment struct {
	Overall      string                `json:"overall" dynamodbav:"overall"`
	Percentages  SentimentPercentages  `json:"percentages" dynamodbav:"percentages"`
	Scores       SentimentScores       `json:"scores" dynamodbav:"scores"`
	Distribution SentimentDistribution `json:"distribution" dynamodbav:"distribution"`
}

// AnalysisResult is the transient output of one orchestrator run, before the
// caller wraps it into a persisted Analysis document.
type AnalysisResult struct {
	Source                string                `json:"source"`
	Query                 string                `json:"query"`
	Timestamp             time.Time             `json:"timestamp"`
	OverallSentiment      string                `json:"overall_sentiment"`
	AverageScores         SentimentScores       `json:"average_scores"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	Percentages           SentimentPercentages  `json:"percentages"`
	TotalAnalyzed         int                   `json:"total_analyzed"`
	Insights              Insights              `json:"insights"`
	TopKeywords           []Keyword             `json:"topKeywords"`
	SentimentOverTime     []HourBucket          `json:"sentimentOverTime"`
	SamplePosts           []SamplePost          `json:"samplePosts"`
	PlatformBreakdown     []PlatformBreakdown   `json:"platformBreakdown"`
	PlatformErrors        map[string]string     `json:"platformErrors,omitempty"`
}

// Analysis is the persisted document. Immutable after creation except for
// deletion; optionally owned by a user and grouped under a project.
type Analysis struct {
	ID                string              `json:"id" dynamodbav:"id"`
	User              string              `json:"user,omitempty" dynamodbav:"user,omitempty"`
	Project           string              `json:"project,omitempty" dynamodbav:"project,omitempty"`
	Query             string              `json:"query" dynamodbav:"query"`
	Source            string              `json:"source" dynamodbav:"source"`
	Sentiment         AnalysisSentiment   `json:"sentiment" dynamodbav:"sentiment"`
	TotalAnalyzed     int                 `json:"totalAnalyzed" dynamodbav:"total_analyzed"`
	Insights          Insights            `json:"insights" dynamodbav:"insights"`
	PlatformBreakdown []PlatformBreakdown `json:"platformBreakdown,omitempty" dynamodbav:"platform_breakdown,omitempty"`
	TopKeywords       []Keyword           `json:"topKeywords,omitempty" dynamodbav:"top_keywords,omitempty"`
	SentimentOverTime []HourBucket        `json:"sentimentOverTime,omitempty" dynamodbav:"sentiment_over_time,omitempty"`
	SamplePosts       []SamplePost        `json:"samplePosts,omitempty" dynamodbav:"sample_posts,omitempty"`
	DateRange         *DateRange          `json:"dateRange,omitempty" dynamodbav:"date_range,omitempty"`
	Metadata          AnalysisMetadata    `json:"metadata" dynamodbav:"metadata"`
	CreatedAt         time.Time           `json:"createdAt" dynamodbav:"created_at"`
}
