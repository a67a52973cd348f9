package platforms

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/models"
)

// RedditFetcher is a deterministic mock. Real Reddit access is intentionally
// out of scope; the generator produces template posts seeded from the query so
// repeated runs with the same query and count yield identical data.
type RedditFetcher struct{}

func NewRedditFetcher() *RedditFetcher {
	return &RedditFetcher{}
}

func (f *RedditFetcher) Platform() string { return models.SourceReddit }

var redditSubreddits = []string{"technology", "gadgets", "apple", "android", "products"}

var redditPositiveTemplates = []string{
	"Just got the %s and I'm absolutely loving it! Best purchase ever.",
	"The %s exceeded all my expectations. Highly recommend!",
	"Can't believe how good the %s is. Worth every penny!",
	"%s is a game changer. Amazing features and great value.",
	"Upgraded to %s and it's incredible. No regrets!",
}

var redditNegativeTemplates = []string{
	"Really disappointed with %s. Not worth the price at all.",
	"%s has too many issues. Would not recommend.",
	"The %s battery life is terrible. Very frustrating.",
	"Overhyped. The %s doesn't live up to expectations.",
	"%s broke after just a few weeks. Poor quality.",
}

var redditNeutralTemplates = []string{
	"The %s is okay. Nothing special but does the job.",
	"%s has some good features but also some drawbacks.",
	"Not sure about %s yet. Need more time to decide.",
	"%s is decent for the price. Could be better.",
	"The %s works fine. Average experience overall.",
}

func (f *RedditFetcher) Search(ctx context.Context, query string, maxResults int, opts analysis.Options) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults > 100 {
		maxResults = 100
	}

	h := fnv.New64a()
	h.Write([]byte(query))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	templateSets := [][]string{redditPositiveTemplates, redditNegativeTemplates, redditNeutralTemplates}
	now := time.Now()

	posts := make([]models.Post, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		templates := templateSets[rng.Intn(len(templateSets))]
		text := fmt.Sprintf(templates[rng.Intn(len(templates))], query)

		daysAgo := rng.Intn(7)
		posts = append(posts, models.Post{
			ID:        fmt.Sprintf("mock_%d_%d", h.Sum64(), i),
			Text:      text,
			CreatedAt: now.AddDate(0, 0, -daysAgo),
			Author:    "r/" + redditSubreddits[rng.Intn(len(redditSubreddits))],
			Lang:      "en",
			Metrics: models.PostMetrics{
				Likes:   rng.Intn(1000),
				Replies: rng.Intn(200),
			},
		})
	}

	return posts, nil
}
