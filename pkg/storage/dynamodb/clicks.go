package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

const expiredClickGSI = "status-expires_at-index"

// CreateClick persists a new click record. The click token is the partition
// key, so a duplicate token fails the conditional put.
func (s *Store) CreateClick(ctx context.Context, click *models.Click) error {
	clickAV, err := attributevalue.MarshalMap(click)
	if err != nil {
		return fmt.Errorf("failed to marshal click: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Clicks),
		Item:                clickAV,
		ConditionExpression: aws.String("attribute_not_exists(click_token)"),
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("click token %s already exists", click.Token)
		}
		return fmt.Errorf("failed to create click in DynamoDB: %w", err)
	}

	return nil
}

// GetClickByToken retrieves a click by its token. The read is strongly
// consistent: reconciliation decisions hang off the click status.
func (s *Store) GetClickByToken(ctx context.Context, token string) (*models.Click, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"click_token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal click token: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.Clicks),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get click from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var click models.Click
	if err := attributevalue.UnmarshalMap(result.Item, &click); err != nil {
		return nil, fmt.Errorf("failed to unmarshal click: %w", err)
	}

	return &click, nil
}

// TransitionClick atomically advances a click's status. The condition on the
// source status is what keeps terminal states from ever reverting.
func (s *Store) TransitionClick(ctx context.Context, token string, from, to models.ClickStatus, conversionID string) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for click transition: %w", err)
	}

	update := "SET #status = :to, updated_at = :now"
	values := map[string]types.AttributeValue{
		":to":   &types.AttributeValueMemberS{Value: string(to)},
		":from": &types.AttributeValueMemberS{Value: string(from)},
		":now":  nowAV,
	}
	if conversionID != "" {
		update += ", conversion_id = :conv, callback_received_at = :now"
		values[":conv"] = &types.AttributeValueMemberS{Value: conversionID}
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.Tables.Clicks),
		Key:                       map[string]types.AttributeValue{"click_token": &types.AttributeValueMemberS{Value: token}},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("#status = :from"),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: values,
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrClickAlreadyFinal
		}
		return fmt.Errorf("failed to transition click %s to %s: %w", token, to, err)
	}

	return nil
}

// ListExpiredPendingClicks queries the status/expires_at index for pending
// clicks whose expiry has passed. Used by the scheduled expiry sweep.
func (s *Store) ListExpiredPendingClicks(ctx context.Context, now time.Time, limit int32) ([]models.Click, error) {
	cutoff, err := now.MarshalText()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal expiry cutoff: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Clicks),
		IndexName:              aws.String(expiredClickGSI),
		KeyConditionExpression: aws.String("#status = :status AND expires_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.ClickPending)},
			":cutoff": &types.AttributeValueMemberS{Value: string(cutoff)},
		},
		Limit: &limit,
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for expired clicks: %w", err)
	}

	var clicks []models.Click
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &clicks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expired clicks: %w", err)
	}

	return clicks, nil
}
