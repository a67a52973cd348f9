package trending

import "strings"

var topicCategories = []struct {
	name     string
	keywords []string
}{
	{"Technology", []string{"ai", "tech", "coding", "programming", "software", "developer", "ml", "data", "web3", "blockchain", "iphone", "apple", "google", "meta", "microsoft", "openai", "chatgpt"}},
	{"Crypto", []string{"crypto", "bitcoin", "ethereum", "nft", "defi", "web3", "coin", "btc", "eth", "blockchain"}},
	{"Business", []string{"business", "startup", "entrepreneur", "finance", "economy", "market", "investing", "stocks", "money", "fed", "reserve"}},
	{"Environment", []string{"climate", "environment", "green", "sustainability", "renewable", "carbon", "nature", "weather"}},
	{"Health", []string{"health", "fitness", "wellness", "mental", "medical", "healthcare", "covid", "vaccine"}},
	{"Entertainment", []string{"music", "movie", "film", "tv", "gaming", "games", "esports", "sports", "art", "netflix", "streaming"}},
	{"Politics", []string{"politics", "election", "vote", "government", "congress", "senate", "parliament"}},
	{"News", []string{"news", "breaking", "update", "alert", "happening", "live", "conflicts", "global"}},
}

// CategorizeTopic buckets a trending title by substring match against the
// category keyword lists, first match wins. Unmatched titles land in General.
func CategorizeTopic(title string) string {
	lower := strings.ToLower(strings.TrimPrefix(title, "#"))
	for _, cat := range topicCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.name
			}
		}
	}
	return "General"
}
