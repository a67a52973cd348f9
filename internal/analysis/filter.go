package analysis

import (
	"regexp"
	"strings"

	"github.com/synsight/synsight/internal/models"
)

// Content filtering. A post is retained only when every check passes; the
// predicate is conjunctive, so check order matters for short-circuit cost
// only.

var (
	urlRe     = regexp.MustCompile(`https?://\S+`)
	mentionRe = regexp.MustCompile(`@[A-Za-z0-9_][A-Za-z0-9_.-]*`)
	hashtagRe = regexp.MustCompile(`#[\pL\pN_]+`)
	retweetRe = regexp.MustCompile(`(?i)^rt\s+@[A-Za-z0-9_][A-Za-z0-9_.-]*:\s*`)
)

var spamPhrases = []string{
	"click here now", "limited time offer", "act now",
	"claim your free", "congratulations you won",
	"earn money fast", "work from home", "make money online",
}

var promoKeywords = []string{
	"shop now", "buy now", "check this out", "click here",
	"limited time", "discount", "sale", "% off", "coupon",
	"deal", "offer", "free shipping", "order now", "get yours",
	"claim now", "act fast", "don't miss", "limited stock",
}

var salesKeywords = []string{
	"sale", "sales", "discount", "deal", "deals", "promotion",
	"marketing", "advertisement", "advertising", "campaign",
	"offer", "coupon", "black friday", "cyber monday", "clearance",
	"promo", "shopping", "buy", "purchase", "price", "pricing",
	"cost", "cheap", "affordable", "budget",
}

type FilterOptions struct {
	Language string
}

// FilterPosts returns the subset of posts that survive every content check.
// The predicate is pure: filtering an already-filtered set is a no-op.
func FilterPosts(posts []models.Post, query string, opts FilterOptions) []models.Post {
	if len(posts) == 0 {
		return nil
	}

	salesQuery := isSalesMarketingQuery(query)

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if filterPost(p, salesQuery, opts) {
			out = append(out, p)
		}
	}
	return out
}

func filterPost(p models.Post, salesQuery bool, opts FilterOptions) bool {
	if !passesLanguage(p, opts.Language) {
		return false
	}
	if isSimpleRetweet(p.Text) {
		return false
	}
	if isTooShort(p.Text) {
		return false
	}
	if isObviousSpam(p.Text, p.Metrics) {
		return false
	}
	if isLikelyBot(p.Text) {
		return false
	}
	if !salesQuery && isPromotional(p.Text) && zeroEngagement(p.Metrics) {
		return false
	}
	return true
}

func passesLanguage(p models.Post, language string) bool {
	if language == "" || language == "all" {
		return true
	}
	if p.Lang != "" {
		return p.Lang == language
	}
	return isValidLanguageContent(p.Text, language)
}

// isSimpleRetweet drops "RT @user:" posts whose residual content is too
// short to carry independent sentiment.
func isSimpleRetweet(text string) bool {
	if !retweetRe.MatchString(text) {
		return false
	}
	residual := strings.TrimSpace(retweetRe.ReplaceAllString(text, ""))
	return len(residual) < 10
}

func cleanText(text string) string {
	cleaned := hashtagRe.ReplaceAllString(mentionRe.ReplaceAllString(urlRe.ReplaceAllString(text, ""), ""), "")
	return strings.Join(strings.Fields(cleaned), " ")
}

func isTooShort(text string) bool {
	return len(cleanText(text)) < 10
}

func zeroEngagement(m models.PostMetrics) bool {
	return m.Likes == 0 && m.Reposts == 0 && m.Replies == 0
}

func containsSpamPhrase(lower string) bool {
	for _, phrase := range spamPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func isObviousSpam(text string, metrics models.PostMetrics) bool {
	urls := urlRe.FindAllString(text, -1)
	nonURL := strings.Join(strings.Fields(urlRe.ReplaceAllString(text, "")), " ")
	if len(urls) >= 3 && len(nonURL) < 30 {
		return true
	}

	if containsSpamPhrase(strings.ToLower(text)) && zeroEngagement(metrics) {
		return true
	}

	hashtags := hashtagRe.FindAllString(text, -1)
	if len(hashtags) > 8 && len(text) < 100 {
		return true
	}

	return false
}

// isLikelyBot flags repetitive word spam and emoji floods.
func isLikelyBot(text string) bool {
	freq := make(map[string]int)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?:;\"'()")
		if len(w) <= 3 {
			continue
		}
		freq[w]++
		if freq[w] > 5 {
			return true
		}
	}

	return countEmoji(text) > 10
}

func countEmoji(text string) int {
	count := 0
	for _, r := range text {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF, // pictographs, emoticons, symbols
			r >= 0x2600 && r <= 0x27BF, // misc symbols, dingbats
			r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
			count++
		}
	}
	return count
}

func isPromotional(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range promoKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isSalesMarketingQuery reports whether the user's query itself is about
// sales or marketing; promotional content is relevant for such queries and
// passes through.
func isSalesMarketingQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range salesKeywords {
		if containsWord(lower, kw) {
			return true
		}
	}
	return false
}

func containsWord(haystack, word string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordRune(rune(haystack[start-1]))
		afterOK := end == len(haystack) || !isWordRune(rune(haystack[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
}
