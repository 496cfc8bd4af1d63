package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// connectionItem is a live websocket connection used for wallet-update pushes.
type connectionItem struct {
	ConnectionID string `dynamodbav:"connection_id"`
}

// AddConnection stores a new websocket connection ID.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	item, err := attributevalue.MarshalMap(connectionItem{ConnectionID: connectionID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection item: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Connections),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection ID: %w", err)
	}

	return nil
}

// RemoveConnection deletes a websocket connection ID.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.Tables.Connections),
		Key:       map[string]types.AttributeValue{"connection_id": &types.AttributeValueMemberS{Value: connectionID}},
	})
	if err != nil {
		return fmt.Errorf("failed to delete connection ID: %w", err)
	}

	return nil
}

// GetAllConnections retrieves all live websocket connection IDs.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.Tables.Connections),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan connections: %w", err)
	}

	var items []connectionItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ConnectionID
	}

	return ids, nil
}
