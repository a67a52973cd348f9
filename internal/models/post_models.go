package models

import "time"

// PostMetrics is the engagement shape shared by every platform. Fetchers
// normalize their native metric names (like_count, ups, repostCount) into
// this struct at the fetch boundary.
type PostMetrics struct {
	Likes   int `json:"likes" dynamodbav:"likes"`
	Reposts int `json:"reposts" dynamodbav:"reposts"`
	Replies int `json:"replies" dynamodbav:"replies"`
}

// Post is the transient unit flowing through the pipeline. Posts are never
// persisted directly; only a bounded sample survives into an Analysis.
type Post struct {
	ID        string      `json:"id,omitempty"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
	Metrics   PostMetrics `json:"metrics"`
	Author    string      `json:"author,omitempty"`
	Lang      string      `json:"lang,omitempty"`
}
