package analysis

import (
	"sort"
	"strings"

	"github.com/synsight/synsight/internal/models"
)

const maxKeywords = 10

var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "with": {}, "to": {}, "for": {},
	"of": {}, "as": {}, "by": {}, "this": {}, "that": {}, "it": {}, "from": {},
	"are": {}, "was": {}, "were": {}, "been": {}, "be": {}, "have": {},
	"has": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "can": {}, "just": {}, "so": {},
	"about": {}, "up": {}, "out": {}, "if": {}, "who": {}, "get": {},
	"make": {}, "go": {}, "see": {}, "know": {}, "take": {}, "think": {},
	"come": {}, "want": {}, "use": {},
}

type keywordCounts struct {
	count      int
	sentiments map[string]int
	order      int
}

// ExtractKeywords ranks the most frequent non-trivial words across texts and
// tags each with the dominant sentiment of the texts it appeared in. Ties on
// the sentiment sub-counters break positive > negative > neutral.
// Deterministic: identical input yields identical ranked output.
func ExtractKeywords(texts []string, results []models.SentimentResult) []models.Keyword {
	freq := make(map[string]*keywordCounts)
	order := 0

	for i, text := range texts {
		sentiment := models.SentimentNeutral
		if i < len(results) && results[i].Sentiment != "" {
			sentiment = results[i].Sentiment
		}

		for _, word := range tokenizeKeywords(text) {
			entry, ok := freq[word]
			if !ok {
				entry = &keywordCounts{sentiments: make(map[string]int), order: order}
				order++
				freq[word] = entry
			}
			entry.count++
			entry.sentiments[sentiment]++
		}
	}

	keywords := make([]models.Keyword, 0, len(freq))
	for word, entry := range freq {
		keywords = append(keywords, models.Keyword{
			Keyword:   word,
			Count:     entry.count,
			Sentiment: dominantSentiment(entry.sentiments),
		})
	}

	// Stable order independent of map iteration: count desc, then first
	// appearance.
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return freq[keywords[i].Keyword].order < freq[keywords[j].Keyword].order
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func tokenizeKeywords(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r > 127:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var words []string
	for _, w := range strings.Fields(b.String()) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

func dominantSentiment(s map[string]int) string {
	pos, neg, neu := s[models.SentimentPositive], s[models.SentimentNegative], s[models.SentimentNeutral]
	switch {
	case pos >= neg && pos >= neu:
		return models.SentimentPositive
	case neg >= neu:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
