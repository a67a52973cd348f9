package sentiment

import (
	"context"
	"strings"
	"testing"

	"github.com/synsight/synsight/internal/models"
)

func TestVaderScoreTextPolarity(t *testing.T) {
	v := NewVaderScorer()
	ctx := context.Background()

	pos, err := v.ScoreText(ctx, "I love this product, it is absolutely wonderful!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Sentiment != models.SentimentPositive {
		t.Fatalf("sentiment = %s (compound %f), want positive", pos.Sentiment, pos.Scores.Compound)
	}
	if pos.Confidence <= 0 || pos.Confidence > 1 {
		t.Fatalf("confidence = %f, want in (0,1]", pos.Confidence)
	}

	neg, err := v.ScoreText(ctx, "I hate this, it is terrible and broken.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if neg.Sentiment != models.SentimentNegative {
		t.Fatalf("sentiment = %s (compound %f), want negative", neg.Sentiment, neg.Scores.Compound)
	}

	neu, err := v.ScoreText(ctx, "The sky is blue.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if neu.Sentiment != models.SentimentNeutral {
		t.Fatalf("sentiment = %s (compound %f), want neutral", neu.Sentiment, neu.Scores.Compound)
	}
}

func TestVaderScoreBulk(t *testing.T) {
	v := NewVaderScorer()

	bulk, err := v.ScoreBulk(context.Background(), []string{
		"I love this product, it is absolutely wonderful!",
		"I hate this, it is terrible and broken.",
		"The sky is blue.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bulk.TotalAnalyzed != 3 {
		t.Fatalf("TotalAnalyzed = %d, want 3", bulk.TotalAnalyzed)
	}
	d := bulk.SentimentDistribution
	if d.Positive != 1 || d.Negative != 1 || d.Neutral != 1 {
		t.Fatalf("distribution = %+v, want 1/1/1", d)
	}
	if len(bulk.IndividualResults) != 3 {
		t.Fatalf("individual results = %d, want 3", len(bulk.IndividualResults))
	}
}

// The lexicon rates mild hedges like "fine" as weakly positive, so "It is
// fine." lands above the 0.05 threshold. That is the reference behavior of
// VADER itself, not a bug in the wrapper.
func TestVaderMildHedgeIsPositive(t *testing.T) {
	v := NewVaderScorer()

	res, err := v.ScoreText(context.Background(), "It is fine.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Sentiment != models.SentimentPositive {
		t.Fatalf("sentiment = %s (compound %f), want positive under the lexicon", res.Sentiment, res.Scores.Compound)
	}
	if res.Scores.Compound < 0.05 {
		t.Fatalf("compound = %f, want >= 0.05", res.Scores.Compound)
	}
}

func TestVaderScoreBulkCancelled(t *testing.T) {
	v := NewVaderScorer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := v.ScoreBulk(ctx, []string{"anything"}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		compound float64
		want     string
	}{
		{0.05, models.SentimentPositive},
		{0.0499, models.SentimentNeutral},
		{0.0, models.SentimentNeutral},
		{-0.0499, models.SentimentNeutral},
		{-0.05, models.SentimentNegative},
		{0.9, models.SentimentPositive},
		{-0.9, models.SentimentNegative},
	}
	for _, c := range cases {
		if got := Classify(c.compound); got != c.want {
			t.Errorf("Classify(%f) = %s, want %s", c.compound, got, c.want)
		}
	}
}

func TestAggregateRounding(t *testing.T) {
	results := []models.SentimentResult{
		{Sentiment: models.SentimentPositive, Scores: models.SentimentScores{Compound: 0.3333333}},
		{Sentiment: models.SentimentPositive, Scores: models.SentimentScores{Compound: 0.3333333}},
		{Sentiment: models.SentimentPositive, Scores: models.SentimentScores{Compound: 0.3333333}},
	}
	bulk := Aggregate(results)
	if bulk.AverageScores.Compound != 0.333 {
		t.Fatalf("average compound = %f, want 0.333", bulk.AverageScores.Compound)
	}
	if bulk.OverallSentiment != models.SentimentPositive {
		t.Fatalf("overall = %s, want positive", bulk.OverallSentiment)
	}
}

func TestAggregateEmpty(t *testing.T) {
	bulk := Aggregate(nil)
	if bulk.TotalAnalyzed != 0 || bulk.OverallSentiment != models.SentimentNeutral {
		t.Fatalf("empty aggregate = %+v", bulk)
	}
}

func TestRemoveLinks(t *testing.T) {
	got := RemoveLinks("see [docs](https://example.com/a) and https://example.com/b plus www.example.com/c done")
	if strings.Contains(got, "http") || strings.Contains(got, "www.") {
		t.Fatalf("links survived: %q", got)
	}
	if !strings.Contains(got, "docs") {
		t.Fatalf("markdown link text lost: %q", got)
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**bold** and *italic* with `code`")
	for _, marker := range []string{"**", "<strong>", "<em>", "<code>"} {
		if strings.Contains(got, marker) {
			t.Fatalf("markdown marker %q survived: %q", marker, got)
		}
	}
	if !strings.Contains(got, "bold") || !strings.Contains(got, "italic") {
		t.Fatalf("text content lost: %q", got)
	}
}
