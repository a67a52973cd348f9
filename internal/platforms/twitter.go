package platforms

import (
	"context"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/clients"
	"github.com/synsight/synsight/internal/models"
)

type TwitterFetcher struct {
	client *clients.TwitterClient
}

func NewTwitterFetcher(client *clients.TwitterClient) *TwitterFetcher {
	return &TwitterFetcher{client: client}
}

func (f *TwitterFetcher) Platform() string { return models.SourceTwitter }

func (f *TwitterFetcher) Search(ctx context.Context, query string, maxResults int, opts analysis.Options) ([]models.Post, error) {
	tweets, err := f.client.SearchRecent(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(tweets))
	for _, t := range tweets {
		if t == nil {
			continue
		}
		posts = append(posts, postFromTweet(t))
	}

	return posts, nil
}

func postFromTweet(t *twitter.TweetObj) models.Post {
	post := models.Post{
		ID:     t.ID,
		Text:   t.Text,
		Author: t.AuthorID,
		Lang:   t.Language,
	}
	if created, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
		post.CreatedAt = created
	}
	if t.PublicMetrics != nil {
		post.Metrics = models.PostMetrics{
			Likes:   t.PublicMetrics.Likes,
			Reposts: t.PublicMetrics.Retweets,
			Replies: t.PublicMetrics.Replies,
		}
	}
	return post
}
