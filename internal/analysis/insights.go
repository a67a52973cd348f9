package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/synsight/synsight/internal/models"
)

// GenerateInsights templates natural-language summaries over already
// computed aggregates. Pure function, no external calls.
func GenerateInsights(dist models.SentimentDistribution, total int, keywords []models.Keyword, hours []models.HourBucket) models.Insights {
	var insights models.Insights
	if total <= 0 {
		return insights
	}

	positivePercent := int(math.Round(float64(dist.Positive) / float64(total) * 100))
	switch {
	case positivePercent >= 60:
		insights.Overall = fmt.Sprintf("Overall positive sentiment (%d%%) indicates strong public reception", positivePercent)
	case positivePercent <= 40:
		insights.Overall = fmt.Sprintf("Mixed sentiment with concerns (%d%% negative/neutral)", 100-positivePercent)
	default:
		insights.Overall = fmt.Sprintf("Balanced sentiment with %d%% positive reception", positivePercent)
	}

	if len(hours) > 0 {
		peak := hours[0]
		for _, h := range hours[1:] {
			if h.Volume > peak.Volume {
				peak = h
			}
		}
		if peak.Volume > 0 {
			insights.PeakEngagement = peakLabel(peak.Hour)
		}
	}

	insights.TopDrivers = topDrivers(keywords)

	return insights
}

func peakLabel(hour int) string {
	label := "AM"
	if hour >= 12 {
		label = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("Peak engagement observed at %d %s", display, label)
}

// topDrivers picks up to 2 positive and 2 negative keywords from the ranked
// list.
func topDrivers(keywords []models.Keyword) []string {
	var positive, negative []string
	for _, k := range keywords {
		switch k.Sentiment {
		case models.SentimentPositive:
			if len(positive) < 2 {
				positive = append(positive, k.Keyword)
			}
		case models.SentimentNegative:
			if len(negative) < 2 {
				negative = append(negative, k.Keyword)
			}
		}
	}

	var drivers []string
	if len(positive) > 0 {
		drivers = append(drivers, fmt.Sprintf("%s (positive aspects)", strings.Join(positive, ", ")))
	}
	if len(negative) > 0 {
		drivers = append(drivers, fmt.Sprintf("%s (concerns)", strings.Join(negative, ", ")))
	}
	return drivers
}
