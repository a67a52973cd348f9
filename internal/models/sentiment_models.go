package models

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

type SentimentScores struct {
	Positive float64 `json:"positive" dynamodbav:"positive"`
	Negative float64 `json:"negative" dynamodbav:"negative"`
	Neutral  float64 `json:"neutral" dynamodbav:"neutral"`
	Compound float64 `json:"compound" dynamodbav:"compound"`
}

// SentimentResult is the per-text classification produced by a Scorer.
type SentimentResult struct {
	Sentiment  string          `json:"sentiment"`
	Scores     SentimentScores `json:"scores"`
	Confidence float64         `json:"confidence"`
}

type SentimentDistribution struct {
	Positive int `json:"positive" dynamodbav:"positive"`
	Negative int `json:"negative" dynamodbav:"negative"`
	Neutral  int `json:"neutral" dynamodbav:"neutral"`
}

// BulkSentiment is the aggregate contract returned by a bulk scoring call.
// TotalAnalyzed always equals the sum of the distribution buckets.
type BulkSentiment struct {
	OverallSentiment      string                `json:"overall_sentiment"`
	AverageScores         SentimentScores       `json:"average_scores"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	TotalAnalyzed         int                   `json:"total_analyzed"`
	IndividualResults     []SentimentResult     `json:"individual_results"`
}
