package models

import "time"

type BlueskySession struct {
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
	Handle     string `json:"handle"`
	Did        string `json:"did"`
}

type BlueskySearchResponse struct {
	Cursor string            `json:"cursor"`
	Posts  []BlueskyPostView `json:"posts"`
}

type BlueskyPostView struct {
	URI         string        `json:"uri"`
	CID         string        `json:"cid"`
	Author      BlueskyAuthor `json:"author"`
	Record      BlueskyRecord `json:"record"`
	LikeCount   int           `json:"likeCount"`
	RepostCount int           `json:"repostCount"`
	ReplyCount  int           `json:"replyCount"`
	QuoteCount  int           `json:"quoteCount"`
	IndexedAt   time.Time     `json:"indexedAt"`
}

type BlueskyAuthor struct {
	Did    string `json:"did"`
	Handle string `json:"handle"`
}

type BlueskyRecord struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Langs     []string  `json:"langs"`
}

type BlueskyTrendingResponse struct {
	Topics []BlueskyTrendingTopic `json:"topics"`
}

type BlueskyTrendingTopic struct {
	Topic string `json:"topic"`
	Link  string `json:"link"`
	Count int    `json:"count"`
}
