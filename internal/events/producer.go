// Package events publishes analysis lifecycle events to Kafka. Publishing is
// optional: without KAFKA_BROKER in the environment every call is a no-op.
package events

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/synsight/synsight/internal/models"
)

const AnalysisCompletedTopic = "synsight.analysis.completed"

type AnalysisCompletedEvent struct {
	ID               string    `json:"id"`
	Query            string    `json:"query"`
	Source           string    `json:"source"`
	OverallSentiment string    `json:"overallSentiment"`
	TotalAnalyzed    int       `json:"totalAnalyzed"`
	CompletedAt      time.Time `json:"completedAt"`
}

type Publisher struct {
	producer *kafka.Producer
}

// NewPublisher connects to KAFKA_BROKER when set; otherwise it returns a
// disabled publisher whose Publish calls do nothing.
func NewPublisher() (*Publisher, error) {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		slog.Info("[Events] KAFKA_BROKER not set, event publishing disabled")
		return &Publisher{}, nil
	}

	slog.Info("[Events] Connecting to Kafka", slog.String("broker", broker))
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[Events] Kafka producer initialized")
	return &Publisher{producer: p}, nil
}

// PublishAnalysisCompleted emits a completion event. Failures are logged and
// swallowed so persistence never fails on a broken broker.
func (p *Publisher) PublishAnalysisCompleted(analysis *models.Analysis) {
	if p.producer == nil {
		return
	}

	event := AnalysisCompletedEvent{
		ID:               analysis.ID,
		Query:            analysis.Query,
		Source:           analysis.Source,
		OverallSentiment: analysis.Sentiment.Overall,
		TotalAnalyzed:    analysis.TotalAnalyzed,
		CompletedAt:      time.Now(),
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		slog.Error("[Events] Failed to marshal event", slog.String("error", err.Error()))
		return
	}

	topic := AnalysisCompletedTopic
	err = p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(analysis.ID),
		Value:          jsonData,
	}, nil)
	if err != nil {
		slog.Error("[Events] Failed to publish analysis event",
			slog.String("id", analysis.ID),
			slog.String("error", err.Error()))
		return
	}

	slog.Info("[Events] Published analysis completed event",
		slog.String("id", analysis.ID),
		slog.String("source", analysis.Source))
}

func (p *Publisher) Close() {
	if p.producer == nil {
		return
	}
	if remaining := p.producer.Flush(5000); remaining > 0 {
		slog.Warn("[Events] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[Events] Kafka producer shut down")
}
