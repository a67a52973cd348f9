package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/synsight/synsight/internal/models"
)

func post(text string, metrics models.PostMetrics) models.Post {
	return models.Post{
		Text:      text,
		Lang:      "en",
		CreatedAt: time.Now(),
		Metrics:   metrics,
	}
}

var someEngagement = models.PostMetrics{Likes: 12, Replies: 3}

func TestFilterPosts(t *testing.T) {
	cases := []struct {
		name string
		post models.Post
		keep bool
	}{
		{"plain opinion", post("The camera on this phone is genuinely impressive in low light.", someEngagement), true},
		{"simple retweet", post("RT @someone: yes", someEngagement), false},
		{"retweet with commentary", post("RT @someone: totally agree, the battery improvements are real and noticeable", someEngagement), true},
		{"too short after cleaning", post("wow https://t.co/abc #cool @user", someEngagement), false},
		{"link farm", post("https://a.com https://b.com https://c.com buy", someEngagement), false},
		{"spam phrase no engagement", post("Congratulations you won a brand new phone, click the link", models.PostMetrics{}), false},
		{"spam phrase with engagement", post("Congratulations you won the finals, what a game that was!", someEngagement), true},
		{"hashtag flood", post("#a #b #c #d #e #f #g #h #i short text here", someEngagement), false},
		{"repeated word bot", post("amazing amazing amazing amazing amazing amazing amazing product", someEngagement), false},
		{"emoji flood", post("nice 😀😀😀😀😀😀😀😀😀😀😀 phone", someEngagement), false},
		{"promotional no engagement", post("Huge discount on these phones, shop now before they sell out", models.PostMetrics{}), false},
		{"promotional with engagement", post("Huge discount on these phones, shop now before they sell out", someEngagement), true},
	}

	for _, c := range cases {
		got := FilterPosts([]models.Post{c.post}, "smartphone", FilterOptions{Language: "en"})
		kept := len(got) == 1
		if kept != c.keep {
			t.Errorf("%s: keep = %v, want %v", c.name, kept, c.keep)
		}
	}
}

func TestFilterPostsSalesQueryKeepsPromotional(t *testing.T) {
	promo := post("Huge discount on these phones, shop now before they sell out", models.PostMetrics{})

	got := FilterPosts([]models.Post{promo}, "black friday sales", FilterOptions{Language: "en"})
	if len(got) != 1 {
		t.Fatalf("promotional post should pass for a sales query, got %d posts", len(got))
	}
}

func TestFilterPostsLanguage(t *testing.T) {
	es := post("Este teléfono es realmente impresionante en condiciones de poca luz.", someEngagement)
	es.Lang = "es"

	if got := FilterPosts([]models.Post{es}, "phone", FilterOptions{Language: "en"}); len(got) != 0 {
		t.Fatalf("expected Spanish post dropped for language=en, kept %d", len(got))
	}
	if got := FilterPosts([]models.Post{es}, "phone", FilterOptions{Language: "es"}); len(got) != 1 {
		t.Fatalf("expected Spanish post kept for language=es, kept %d", len(got))
	}
	if got := FilterPosts([]models.Post{es}, "phone", FilterOptions{}); len(got) != 1 {
		t.Fatalf("expected Spanish post kept without a language filter, kept %d", len(got))
	}
}

func TestFilterPostsIdempotent(t *testing.T) {
	posts := []models.Post{
		post("The camera on this phone is genuinely impressive in low light.", someEngagement),
		post("RT @someone: ok", someEngagement),
		post("Honestly the update made everything slower and the UI is a mess now.", someEngagement),
	}

	once := FilterPosts(posts, "phone", FilterOptions{Language: "en"})
	twice := FilterPosts(once, "phone", FilterOptions{Language: "en"})

	if len(once) != 2 || len(twice) != len(once) {
		t.Fatalf("filter not idempotent: first pass %d, second pass %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Text != twice[i].Text {
			t.Fatalf("second pass reordered posts")
		}
	}
}

func TestIsSimpleRetweetResidual(t *testing.T) {
	if isSimpleRetweet("RT @user: this commentary is long enough to stand on its own") {
		t.Fatalf("retweet with long residual should not count as simple")
	}
	if !isSimpleRetweet("RT @user: ok") {
		t.Fatalf("retweet with short residual should count as simple")
	}
	if isSimpleRetweet("not a retweet at all") {
		t.Fatalf("plain text misdetected as retweet")
	}
}

func TestCleanTextStripsNoise(t *testing.T) {
	got := cleanText("look https://x.co/a @user #tag   spaced    out")
	if strings.Contains(got, "https") || strings.Contains(got, "@") || strings.Contains(got, "#") {
		t.Fatalf("cleanText left noise: %q", got)
	}
	if got != "look spaced out" {
		t.Fatalf("cleanText = %q", got)
	}
}
