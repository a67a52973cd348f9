package analysis

import (
	"fmt"
	"testing"

	"github.com/synsight/synsight/internal/models"
)

func results(sentiments ...string) []models.SentimentResult {
	out := make([]models.SentimentResult, len(sentiments))
	for i, s := range sentiments {
		out[i] = models.SentimentResult{Sentiment: s}
	}
	return out
}

func TestExtractKeywordsCountsAndOrder(t *testing.T) {
	texts := []string{
		"battery life is great, battery lasts forever",
		"battery drains but camera shines",
		"camera quality impressed everyone",
	}
	keywords := ExtractKeywords(texts, results(
		models.SentimentPositive, models.SentimentNegative, models.SentimentPositive))

	if len(keywords) == 0 {
		t.Fatal("no keywords extracted")
	}
	if keywords[0].Keyword != "battery" || keywords[0].Count != 3 {
		t.Fatalf("top keyword = %+v, want battery count 3", keywords[0])
	}
	if keywords[1].Keyword != "camera" || keywords[1].Count != 2 {
		t.Fatalf("second keyword = %+v, want camera count 2", keywords[1])
	}
	for _, k := range keywords {
		if k.Keyword == "is" || k.Keyword == "but" || k.Keyword == "and" {
			t.Fatalf("stopword or short word leaked: %q", k.Keyword)
		}
	}
}

func TestExtractKeywordsSentimentTieBreak(t *testing.T) {
	// "signal" appears once positive, once negative, once neutral; ties break
	// positive over negative over neutral.
	texts := []string{"signal strong", "signal weak", "signal exists"}
	keywords := ExtractKeywords(texts, results(
		models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral))

	for _, k := range keywords {
		if k.Keyword == "signal" {
			if k.Sentiment != models.SentimentPositive {
				t.Fatalf("signal sentiment = %s, want positive", k.Sentiment)
			}
			return
		}
	}
	t.Fatal("keyword signal not found")
}

func TestExtractKeywordsNegativeOverNeutral(t *testing.T) {
	texts := []string{"latency spikes", "latency acceptable"}
	keywords := ExtractKeywords(texts, results(
		models.SentimentNegative, models.SentimentNeutral))

	for _, k := range keywords {
		if k.Keyword == "latency" {
			if k.Sentiment != models.SentimentNegative {
				t.Fatalf("latency sentiment = %s, want negative", k.Sentiment)
			}
			return
		}
	}
	t.Fatal("keyword latency not found")
}

func TestExtractKeywordsTopTen(t *testing.T) {
	var texts []string
	for i := 0; i < 15; i++ {
		texts = append(texts, fmt.Sprintf("unique%02d word", i))
	}
	keywords := ExtractKeywords(texts, nil)
	if len(keywords) > 10 {
		t.Fatalf("got %d keywords, want at most 10", len(keywords))
	}
	// "word" appears in all 15 texts and must rank first.
	if keywords[0].Keyword != "word" || keywords[0].Count != 15 {
		t.Fatalf("top keyword = %+v, want word count 15", keywords[0])
	}
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	texts := []string{"alpha beta gamma", "beta gamma delta", "gamma delta alpha"}
	first := ExtractKeywords(texts, nil)
	for i := 0; i < 10; i++ {
		again := ExtractKeywords(texts, nil)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: position %d changed: %+v vs %+v", i, j, first[j], again[j])
			}
		}
	}
}
