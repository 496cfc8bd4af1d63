package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// earningKey is a uniqueness marker in the earning-keys table. Claiming the
// marker inside the same write transaction as the earning itself is what
// enforces at-most-one earning per click token / conversion id.
type earningKey struct {
	Key       string `dynamodbav:"key"`
	EarningId string `dynamodbav:"earning_id"`
}

func clickKey(token string) string { return "click#" + token }

func conversionKey(id string) string { return "conv#" + id }

func commissionKey(user, src string) string { return "commission#" + user + "#" + src }

// keyMarkerPut builds a conditional Put of one uniqueness marker.
func (s *Store) keyMarkerPut(key, earningID string) (*types.Put, error) {
	markerAV, err := attributevalue.MarshalMap(earningKey{Key: key, EarningId: earningID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal earning key marker: %w", err)
	}
	return &types.Put{
		TableName:                aws.String(s.Tables.EarningKeys),
		Item:                     markerAV,
		ConditionExpression:      aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{"#key": "key"},
	}, nil
}

// CreateEarning persists a new earning and claims its idempotency keys in a
// single write transaction. If another caller already claimed a key, the
// whole transaction cancels and ErrEarningExists is returned; the caller is
// expected to re-fetch the winner's record.
func (s *Store) CreateEarning(ctx context.Context, earning *models.Earning) error {
	earningAV, err := attributevalue.MarshalMap(earning)
	if err != nil {
		return fmt.Errorf("failed to marshal earning: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Earnings),
				Item:                earningAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
	}

	if earning.ClickToken != "" {
		put, err := s.keyMarkerPut(clickKey(earning.ClickToken), earning.Id)
		if err != nil {
			return err
		}
		items = append(items, types.TransactWriteItem{Put: put})
	}
	if earning.ConversionId != "" {
		put, err := s.keyMarkerPut(conversionKey(earning.ConversionId), earning.Id)
		if err != nil {
			return err
		}
		items = append(items, types.TransactWriteItem{Put: put})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if anyTransactConditionFailed(err) {
			return storage.ErrEarningExists
		}
		return fmt.Errorf("failed to create earning: %w", err)
	}

	return nil
}
