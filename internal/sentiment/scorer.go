package sentiment

import (
	"context"
	"errors"
	"math"

	"github.com/synsight/synsight/internal/models"
)

// ErrScoringUnavailable means the scoring backend failed hard (process exit,
// unparsable output). Callers abort the whole analysis; there is no degraded
// fallback.
var ErrScoringUnavailable = errors.New("sentiment scoring unavailable")

// Classification thresholds on the compound polarity score. These are the
// documented contract: any Scorer implementation must reproduce them so the
// backend stays swappable.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer classifies text polarity using a compound score in [-1,1].
type Scorer interface {
	ScoreText(ctx context.Context, text string) (*models.SentimentResult, error)
	ScoreBulk(ctx context.Context, texts []string) (*models.BulkSentiment, error)
}

// Classify maps a compound score to a sentiment label.
func Classify(compound float64) string {
	switch {
	case compound >= positiveThreshold:
		return models.SentimentPositive
	case compound <= negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Aggregate folds per-text results into the bulk contract. Average scores
// are rounded to 3 decimals; the overall label is classified from the mean
// compound score.
func Aggregate(results []models.SentimentResult) *models.BulkSentiment {
	bulk := &models.BulkSentiment{
		TotalAnalyzed:     len(results),
		IndividualResults: results,
	}
	if len(results) == 0 {
		bulk.OverallSentiment = models.SentimentNeutral
		return bulk
	}

	var totals models.SentimentScores
	for _, r := range results {
		totals.Positive += r.Scores.Positive
		totals.Negative += r.Scores.Negative
		totals.Neutral += r.Scores.Neutral
		totals.Compound += r.Scores.Compound

		switch r.Sentiment {
		case models.SentimentPositive:
			bulk.SentimentDistribution.Positive++
		case models.SentimentNegative:
			bulk.SentimentDistribution.Negative++
		default:
			bulk.SentimentDistribution.Neutral++
		}
	}

	n := float64(len(results))
	bulk.AverageScores = models.SentimentScores{
		Positive: round3(totals.Positive / n),
		Negative: round3(totals.Negative / n),
		Neutral:  round3(totals.Neutral / n),
		Compound: round3(totals.Compound / n),
	}
	bulk.OverallSentiment = Classify(bulk.AverageScores.Compound)

	return bulk
}
