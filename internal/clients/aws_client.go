package clients

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var (
	awsCfg   aws.Config
	awsOnce  sync.Once
	endpoint string
)

func GetAWSConfig() aws.Config {
	awsOnce.Do(func() {
		region := os.Getenv("AWS_REGION")
		if region == "" {
			region = "us-west-2"
		}

		slog.Info("[AWSClient] Initializing AWS Config...")
		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion(region))
		if err != nil {
			slog.Error("[AWSClient] Failed to load AWS config")
			panic(err)
		}

		awsCfg = cfg
		endpoint = os.Getenv("AWS_ENDPOINT")
		slog.Info("[AWSClient] AWS Config Initialized")
	})

	return awsCfg
}

// GetDynamoDBClient points at a local DynamoDB when AWS_ENDPOINT is set,
// otherwise at the real service.
func GetDynamoDBClient() *dynamodb.Client {
	return dynamodb.NewFromConfig(GetAWSConfig(), func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}
