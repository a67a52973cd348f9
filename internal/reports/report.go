// Package reports turns a completed analysis into a long-form markdown
// narrative through the OpenAI chat-completion API.
package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/synsight/synsight/internal/models"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.7
	defaultMaxTokens   = 4096

	systemPrompt = `You are a senior intelligence analyst known for thorough, comprehensive analysis.
You must be analytical and actionable, and adapt to the domain of the query.`
)

type Service struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewService reads OPENAI_MODEL, OPENAI_TEMPERATURE and OPENAI_MAX_TOKENS,
// falling back to gpt-4o-mini / 0.7 / 4096.
func NewService(client *openai.Client) *Service {
	s := &Service{
		client:      client,
		model:       defaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		s.model = model
	}
	if raw := os.Getenv("OPENAI_TEMPERATURE"); raw != "" {
		if temp, err := strconv.ParseFloat(raw, 32); err == nil {
			s.temperature = float32(temp)
		}
	}
	if raw := os.Getenv("OPENAI_MAX_TOKENS"); raw != "" {
		if tokens, err := strconv.Atoi(raw); err == nil && tokens > 0 {
			s.maxTokens = tokens
		}
	}
	return s
}

// GenerateReport builds the report prompt from the analysis and runs a single
// chat completion. API failures are surfaced once with a descriptive message;
// there are no retries.
func (s *Service) GenerateReport(ctx context.Context, analysis *models.Analysis, query string) (*models.Report, error) {
	prompt := buildPrompt(analysis, query)

	slog.Info("[Reports] Generating report",
		slog.String("query", query),
		slog.String("model", s.model),
		slog.Int("sample_posts", len(analysis.SamplePosts)))

	res, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return nil, errors.New("[Reports] Empty response from OpenAI")
	}

	report := &models.Report{
		Content: res.Choices[0].Message.Content,
		Usage: models.ReportUsage{
			PromptTokens:     res.Usage.PromptTokens,
			CompletionTokens: res.Usage.CompletionTokens,
			TotalTokens:      res.Usage.TotalTokens,
		},
		GeneratedAt:   time.Now(),
		Query:         query,
		TotalAnalyzed: analysis.TotalAnalyzed,
	}

	slog.Info("[Reports] Report generated",
		slog.Int("total_tokens", report.Usage.TotalTokens))
	return report, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return errors.New("[Reports] Invalid API key")
		case http.StatusTooManyRequests:
			return errors.New("[Reports] Rate limit exceeded. Please try again later.")
		case http.StatusInternalServerError:
			return errors.New("[Reports] OpenAI service temporarily unavailable")
		}
		return fmt.Errorf("[Reports] OpenAI API error: %s", apiErr.Message)
	}
	return fmt.Errorf("[Reports] OpenAI request failed: %w", err)
}
