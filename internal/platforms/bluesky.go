package platforms

import (
	"context"

	"github.com/synsight/synsight/internal/analysis"
	"github.com/synsight/synsight/internal/clients"
	"github.com/synsight/synsight/internal/models"
)

type BlueskyFetcher struct {
	client *clients.BlueskyClient
}

func NewBlueskyFetcher(client *clients.BlueskyClient) *BlueskyFetcher {
	return &BlueskyFetcher{client: client}
}

func (f *BlueskyFetcher) Platform() string { return models.SourceBluesky }

func (f *BlueskyFetcher) Search(ctx context.Context, query string, maxResults int, opts analysis.Options) ([]models.Post, error) {
	views, err := f.client.SearchPosts(ctx, query, maxResults, opts.Language)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(views))
	for _, v := range views {
		lang := ""
		if len(v.Record.Langs) > 0 {
			lang = v.Record.Langs[0]
		}
		created := v.Record.CreatedAt
		if created.IsZero() {
			created = v.IndexedAt
		}
		posts = append(posts, models.Post{
			ID:        v.URI,
			Text:      v.Record.Text,
			CreatedAt: created,
			Author:    v.Author.Handle,
			Lang:      lang,
			Metrics: models.PostMetrics{
				Likes:   v.LikeCount,
				Reposts: v.RepostCount,
				Replies: v.ReplyCount,
			},
		})
	}

	return posts, nil
}
