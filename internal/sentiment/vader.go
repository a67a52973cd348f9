package sentiment

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/synsight/synsight/internal/models"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// VaderScorer scores text in-process with the govader lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText flattens Reddit-style markdown into plain text so
// formatting characters don't skew the lexicon.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := htmlTagPattern.ReplaceAllString(string(output), " ")
	plainText := strings.Join(strings.Fields(stripped), " ")

	return RemoveLinks(plainText)
}

func (v *VaderScorer) score(text string) models.SentimentResult {
	plainText := ConvertMarkdownToText(text)
	scores := v.analyzer.PolarityScores(plainText)

	return models.SentimentResult{
		Sentiment: Classify(scores.Compound),
		Scores: models.SentimentScores{
			Positive: scores.Positive,
			Negative: scores.Negative,
			Neutral:  scores.Neutral,
			Compound: scores.Compound,
		},
		Confidence: math.Abs(scores.Compound),
	}
}

func (v *VaderScorer) ScoreText(ctx context.Context, text string) (*models.SentimentResult, error) {
	result := v.score(text)
	return &result, nil
}

func (v *VaderScorer) ScoreBulk(ctx context.Context, texts []string) (*models.BulkSentiment, error) {
	results := make([]models.SentimentResult, 0, len(texts))
	for _, text := range texts {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		results = append(results, v.score(text))
	}
	return Aggregate(results), nil
}
