package reports

import (
	"strings"
	"testing"

	"github.com/synsight/synsight/internal/models"
)

func TestSafeText(t *testing.T) {
	got := safeText("  fenced ```code``` and\x00null  ")
	if strings.Contains(got, "```") {
		t.Fatalf("code fence survived: %q", got)
	}
	if strings.Contains(got, "\x00") {
		t.Fatalf("null char survived: %q", got)
	}
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Fatalf("not trimmed: %q", got)
	}
}

func samplesOf(sentiment string, n int) []models.SamplePost {
	out := make([]models.SamplePost, n)
	for i := range out {
		out[i] = models.SamplePost{Text: sentiment, Sentiment: sentiment}
	}
	return out
}

func TestSelectSamplePostsStratified(t *testing.T) {
	var posts []models.SamplePost
	posts = append(posts, samplesOf(models.SentimentPositive, 50)...)
	posts = append(posts, samplesOf(models.SentimentNegative, 50)...)
	posts = append(posts, samplesOf(models.SentimentNeutral, 50)...)

	selected := selectSamplePosts(posts, 60)
	if len(selected) != 60 {
		t.Fatalf("selected %d, want 60", len(selected))
	}

	counts := map[string]int{}
	for _, p := range selected {
		counts[p.Sentiment]++
	}
	if counts[models.SentimentNegative] != 20 || counts[models.SentimentPositive] != 20 || counts[models.SentimentNeutral] != 20 {
		t.Fatalf("stratification counts = %v, want 20 each", counts)
	}

	// Round-robin order starts with the negative bucket.
	if selected[0].Sentiment != models.SentimentNegative {
		t.Fatalf("first pick = %s, want negative", selected[0].Sentiment)
	}
}

func TestSelectSamplePostsDrainsShortBuckets(t *testing.T) {
	var posts []models.SamplePost
	posts = append(posts, samplesOf(models.SentimentPositive, 5)...)
	posts = append(posts, samplesOf(models.SentimentNegative, 1)...)

	selected := selectSamplePosts(posts, 60)
	if len(selected) != 6 {
		t.Fatalf("selected %d, want all 6 available", len(selected))
	}
}

func TestSelectSamplePostsEmpty(t *testing.T) {
	if got := selectSamplePosts(nil, 60); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	analysis := &models.Analysis{
		Query:         "espresso machines",
		TotalAnalyzed: 42,
		Sentiment: models.AnalysisSentiment{
			Overall:      models.SentimentPositive,
			Percentages:  models.SentimentPercentages{Positive: 60, Negative: 25, Neutral: 15},
			Distribution: models.SentimentDistribution{Positive: 25, Negative: 10, Neutral: 7},
			Scores:       models.SentimentScores{Compound: 0.42},
		},
		TopKeywords: []models.Keyword{{Keyword: "crema", Count: 9, Sentiment: models.SentimentPositive}},
		SamplePosts: []models.SamplePost{{Text: "best crema ever", Sentiment: models.SentimentPositive}},
		Insights:    models.Insights{Overall: "Overall positive sentiment (60%) indicates strong public reception"},
	}

	prompt := buildPrompt(analysis, analysis.Query)

	for _, want := range []string{
		`"espresso machines"`,
		"TOTAL POSTS ANALYZED: 42",
		"Positive: 60% (25 posts)",
		"Compound Score: 0.42",
		`"crema" (count: 9, sentiment: positive)`,
		"POST 1 [POSITIVE]",
		"best crema ever",
		"untrusted content",
		`Decide what "espresso machines" most likely is`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	if !strings.Contains(prompt, "DATE RANGE: N/A to N/A") {
		t.Fatalf("missing date range fallback")
	}
	// Every verb in the template must be paired with an argument.
	if strings.Contains(prompt, "(MISSING)") || strings.Contains(prompt, "%!") {
		t.Fatalf("unfilled format verb in prompt")
	}
}
