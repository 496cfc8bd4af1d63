package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

const earningUserIDIndex = "user_id-index"

// GetEarning retrieves an earning by its id.
func (s *Store) GetEarning(ctx context.Context, id string) (*models.Earning, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal earning ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.Earnings),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get earning from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var earning models.Earning
	if err := attributevalue.UnmarshalMap(result.Item, &earning); err != nil {
		return nil, fmt.Errorf("failed to unmarshal earning: %w", err)
	}

	return &earning, nil
}

// getEarningByKey resolves a uniqueness marker to the earning that owns it.
// Both reads are strongly consistent; an eventually-consistent index here
// would reopen the duplicate-credit window the markers exist to close.
func (s *Store) getEarningByKey(ctx context.Context, markerKey string) (*models.Earning, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"key": markerKey})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal earning key: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.EarningKeys),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get earning key from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var marker earningKey
	if err := attributevalue.UnmarshalMap(result.Item, &marker); err != nil {
		return nil, fmt.Errorf("failed to unmarshal earning key: %w", err)
	}

	return s.GetEarning(ctx, marker.EarningId)
}

// GetEarningByClickToken retrieves the earning claimed by a click token.
func (s *Store) GetEarningByClickToken(ctx context.Context, token string) (*models.Earning, error) {
	return s.getEarningByKey(ctx, clickKey(token))
}

// GetEarningByConversionID retrieves the earning claimed by an external
// conversion id.
func (s *Store) GetEarningByConversionID(ctx context.Context, conversionID string) (*models.Earning, error) {
	return s.getEarningByKey(ctx, conversionKey(conversionID))
}

// ListEarningsByUserID retrieves all earnings owned by a user.
func (s *Store) ListEarningsByUserID(ctx context.Context, userID string) ([]models.Earning, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Earnings),
		IndexName:              aws.String(earningUserIDIndex),
		KeyConditionExpression: aws.String("user_id = :userID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for earnings by user ID: %w", err)
	}

	var earnings []models.Earning
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &earnings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal earnings: %w", err)
	}

	return earnings, nil
}

// updateEarning runs an UpdateItem against the earnings table and returns the
// updated record.
func (s *Store) updateEarning(ctx context.Context, id string, input *dynamodb.UpdateItemInput) (*models.Earning, error) {
	input.TableName = aws.String(s.Tables.Earnings)
	input.Key = map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
	input.ReturnValues = types.ReturnValueAllNew

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		return nil, err
	}

	var earning models.Earning
	if err := attributevalue.UnmarshalMap(result.Attributes, &earning); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated earning: %w", err)
	}

	return &earning, nil
}

// CancelEarning sets the earning to cancelled/rejected with the given reason.
// No wallet effect; reversal of an already-applied credit is a separate
// accounting action, not something cancellation infers.
func (s *Store) CancelEarning(ctx context.Context, id, reason string) (*models.Earning, error) {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for cancellation: %w", err)
	}

	earning, err := s.updateEarning(ctx, id, &dynamodb.UpdateItemInput{
		UpdateExpression:         aws.String("SET #status = :cancelled, approval_status = :rejected, rejection_reason = :reason, updated_at = :now"),
		ConditionExpression:      aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: string(models.EarningCancelled)},
			":rejected":  &types.AttributeValueMemberS{Value: string(models.ApprovalRejected)},
			":reason":    &types.AttributeValueMemberS{Value: reason},
			":now":       nowAV,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel earning %s: %w", id, err)
	}

	return earning, nil
}

// RecordEarningReview stamps a manual-review outcome onto the earning.
func (s *Store) RecordEarningReview(ctx context.Context, id string, approval models.ApprovalStatus, reviewedBy, notes string) (*models.Earning, error) {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for review: %w", err)
	}

	earning, err := s.updateEarning(ctx, id, &dynamodb.UpdateItemInput{
		UpdateExpression:    aws.String("SET approval_status = :approval, reviewed_by = :by, review_notes = :notes, reviewed_at = :now, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":approval": &types.AttributeValueMemberS{Value: string(approval)},
			":by":       &types.AttributeValueMemberS{Value: reviewedBy},
			":notes":    &types.AttributeValueMemberS{Value: notes},
			":now":      nowAV,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record review for earning %s: %w", id, err)
	}

	return earning, nil
}
