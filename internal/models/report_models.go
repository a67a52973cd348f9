package models

import "time"

type ReportUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Report is the LLM-generated markdown narrative built from a completed
// Analysis.
type Report struct {
	Content       string      `json:"content"`
	Usage         ReportUsage `json:"usage"`
	GeneratedAt   time.Time   `json:"generatedAt"`
	Query         string      `json:"query"`
	TotalAnalyzed int         `json:"totalAnalyzed"`
}
