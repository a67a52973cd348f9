package platforms

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/synsight/synsight/internal/analysis"
)

func TestRedditSearchDeterministic(t *testing.T) {
	f := NewRedditFetcher()
	ctx := context.Background()

	first, err := f.Search(ctx, "headphones", 20, analysis.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := f.Search(ctx, "headphones", 20, analysis.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 20 || len(second) != 20 {
		t.Fatalf("lengths = %d/%d, want 20", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text || first[i].Metrics != second[i].Metrics {
			t.Fatalf("post %d differs between runs", i)
		}
	}
}

func TestRedditSearchVariesByQuery(t *testing.T) {
	f := NewRedditFetcher()
	ctx := context.Background()

	a, _ := f.Search(ctx, "headphones", 10, analysis.Options{})
	b, _ := f.Search(ctx, "laptops", 10, analysis.Options{})

	same := true
	for i := range a {
		if a[i].Metrics != b[i].Metrics {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different queries produced identical metric streams")
	}
}

func TestRedditSearchShape(t *testing.T) {
	f := NewRedditFetcher()
	posts, err := f.Search(context.Background(), "espresso machine", 150, analysis.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 100 {
		t.Fatalf("got %d posts, want capped at 100", len(posts))
	}

	weekAgo := time.Now().AddDate(0, 0, -7).Add(-time.Hour)
	for _, p := range posts {
		if !strings.Contains(p.Text, "espresso machine") {
			t.Fatalf("post text missing query: %q", p.Text)
		}
		if p.CreatedAt.Before(weekAgo) || p.CreatedAt.After(time.Now().Add(time.Hour)) {
			t.Fatalf("created_at out of range: %v", p.CreatedAt)
		}
		if p.Lang != "en" {
			t.Fatalf("lang = %q, want en", p.Lang)
		}
		if !strings.HasPrefix(p.Author, "r/") {
			t.Fatalf("author = %q, want subreddit", p.Author)
		}
	}
}

func TestRedditPlatformName(t *testing.T) {
	if got := NewRedditFetcher().Platform(); got != "reddit" {
		t.Fatalf("platform = %q", got)
	}
}
