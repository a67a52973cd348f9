package models

// TrendingTopic is a Bluesky trending entry, optionally enriched with a
// sentiment snapshot. Raw (unenriched) entries carry zero-value sentiment
// fields.
type TrendingTopic struct {
	Title        string                 `json:"title"`
	RawTitle     string                 `json:"rawTitle"`
	Category     string                 `json:"category"`
	Count        int                    `json:"count"`
	Sentiment    string                 `json:"sentiment,omitempty"`
	Percentages  *SentimentPercentages  `json:"percentages,omitempty"`
	Distribution *SentimentDistribution `json:"distribution,omitempty"`
	Engagement   int                    `json:"engagement"`
	Posts        []SamplePost           `json:"posts,omitempty"`
}
