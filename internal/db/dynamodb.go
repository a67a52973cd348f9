package db

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/synsight/synsight/internal/clients"
	"github.com/synsight/synsight/internal/models"
)

const (
	ANALYSES_TABLE_NAME = "Analyses"

	listAnalysesLimit = 50
)

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

func client() *dynamodb.Client {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}
	return dbClient
}

// Statistics summarizes a user's stored analyses by overall sentiment.
type Statistics struct {
	TotalAnalyses int            `json:"totalAnalyses"`
	BySentiment   map[string]int `json:"bySentiment"`
	BySource      map[string]int `json:"bySource"`
}

// SaveAnalysis writes a completed analysis document. Documents are immutable
// after creation.
func SaveAnalysis(ctx context.Context, analysis *models.Analysis) error {
	item, err := attributevalue.MarshalMap(analysis)
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal analysis: %w", err)
	}

	_, err = client().PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ANALYSES_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store analysis: %w", err)
	}

	slog.Info("[DynamoDB] Analysis stored",
		slog.String("id", analysis.ID),
		slog.String("source", analysis.Source))
	return nil
}

// GetAnalysis fetches one analysis by id. When user is non-empty the document
// must belong to that user; a mismatch reads the same as a miss.
func GetAnalysis(ctx context.Context, id, user string) (*models.Analysis, error) {
	out, err := client().GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ANALYSES_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to fetch analysis: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var analysis models.Analysis
	if err := attributevalue.UnmarshalMap(out.Item, &analysis); err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to unmarshal analysis: %w", err)
	}
	if user != "" && analysis.User != user {
		return nil, nil
	}
	return &analysis, nil
}

// ListAnalyses returns up to 50 of the user's analyses, newest first.
func ListAnalyses(ctx context.Context, user string) ([]models.Analysis, error) {
	analyses, err := scanUserAnalyses(ctx, user)
	if err != nil {
		return nil, err
	}

	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})
	if len(analyses) > listAnalysesLimit {
		analyses = analyses[:listAnalysesLimit]
	}

	slog.Info("[DynamoDB] Successfully retrieved analyses", slog.Int("count", len(analyses)))
	return analyses, nil
}

// DeleteAnalysis removes an analysis owned by the user. Deleting a missing or
// foreign document is a no-op that reports not-found.
func DeleteAnalysis(ctx context.Context, id, user string) (bool, error) {
	existing, err := GetAnalysis(ctx, id, user)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	_, err = client().DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ANALYSES_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return false, fmt.Errorf("[DynamoDB] Failed to delete analysis: %w", err)
	}

	slog.Info("[DynamoDB] Analysis deleted", slog.String("id", id))
	return true, nil
}

// GetStatistics aggregates the user's stored analyses by sentiment and source.
func GetStatistics(ctx context.Context, user string) (*Statistics, error) {
	analyses, err := scanUserAnalyses(ctx, user)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalAnalyses: len(analyses),
		BySentiment:   make(map[string]int),
		BySource:      make(map[string]int),
	}
	for _, a := range analyses {
		stats.BySentiment[a.Sentiment.Overall]++
		stats.BySource[a.Source]++
	}
	return stats, nil
}

func scanUserAnalyses(ctx context.Context, user string) ([]models.Analysis, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(ANALYSES_TABLE_NAME),
	}
	if user != "" {
		input.FilterExpression = aws.String("#u = :user")
		input.ExpressionAttributeNames = map[string]string{"#u": "user"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: user},
		}
	}

	var analyses []models.Analysis
	paginator := dynamodb.NewScanPaginator(client(), input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for analyses failed: %w", err)
		}
		var page []models.Analysis
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal analyses page", slog.String("error", err.Error()))
			return nil, err
		}
		analyses = append(analyses, page...)
	}

	return analyses, nil
}
