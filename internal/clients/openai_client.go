package clients

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/synsight/synsight/internal/analysis"
)

const (
	openAIRequestTimeout = 120 * time.Second // Timeout for individual OpenAI API requests
)

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

func GetOpenAIClient() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, fmt.Errorf("[OpenAIClient] OPENAI_API_KEY not set: %w", analysis.ErrConfigurationMissing)
	}
	openAIOnce.Do(func() {
		config := openai.DefaultConfig(apiKey)
		httpClient := &http.Client{
			Timeout: openAIRequestTimeout,
		}
		config.HTTPClient = httpClient

		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClientWithConfig(config),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout", slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, nil
}
