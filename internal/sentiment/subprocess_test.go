package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/synsight/synsight/internal/models"
)

func TestSubprocessScoreText(t *testing.T) {
	s := NewSubprocessScorer("sh", "-c",
		`echo '{"sentiment":"positive","scores":{"positive":0.5,"negative":0.0,"neutral":0.5,"compound":0.6},"confidence":0.6}'`)

	result, err := s.ScoreText(context.Background(), "great stuff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Sentiment != models.SentimentPositive {
		t.Fatalf("sentiment = %s, want positive", result.Sentiment)
	}
	if result.Scores.Compound != 0.6 {
		t.Fatalf("compound = %f, want 0.6", result.Scores.Compound)
	}
}

func TestSubprocessScoreBulk(t *testing.T) {
	s := NewSubprocessScorer("sh", "-c",
		`echo '{"overall_sentiment":"negative","total_analyzed":2,"sentiment_distribution":{"positive":0,"negative":2,"neutral":0}}'`)

	bulk, err := s.ScoreBulk(context.Background(), []string{"bad", "worse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bulk.OverallSentiment != models.SentimentNegative || bulk.TotalAnalyzed != 2 {
		t.Fatalf("bulk = %+v", bulk)
	}
}

func TestSubprocessNonZeroExit(t *testing.T) {
	s := NewSubprocessScorer("false")

	_, err := s.ScoreText(context.Background(), "anything")
	if !errors.Is(err, ErrScoringUnavailable) {
		t.Fatalf("err = %v, want ErrScoringUnavailable", err)
	}
}

func TestSubprocessStderrIsFatal(t *testing.T) {
	s := NewSubprocessScorer("sh", "-c", `echo '{}' ; echo boom >&2`)

	_, err := s.ScoreText(context.Background(), "anything")
	if !errors.Is(err, ErrScoringUnavailable) {
		t.Fatalf("err = %v, want ErrScoringUnavailable for stderr output", err)
	}
}

func TestSubprocessNoOutput(t *testing.T) {
	s := NewSubprocessScorer("true")

	_, err := s.ScoreText(context.Background(), "anything")
	if !errors.Is(err, ErrScoringUnavailable) {
		t.Fatalf("err = %v, want ErrScoringUnavailable for empty output", err)
	}
}

func TestSubprocessUnparsableOutput(t *testing.T) {
	s := NewSubprocessScorer("sh", "-c", `echo not-json`)

	_, err := s.ScoreText(context.Background(), "anything")
	if !errors.Is(err, ErrScoringUnavailable) {
		t.Fatalf("err = %v, want ErrScoringUnavailable for unparsable output", err)
	}
}
