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

// GetReferralLinkByReferredUser retrieves the referral link for a referred
// user. The referred user id is the partition key: one referrer per user,
// permanently.
func (s *Store) GetReferralLinkByReferredUser(ctx context.Context, userID string) (*models.ReferralLink, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"referred_user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal referred user ID: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.Tables.Referrals),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get referral link from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var link models.ReferralLink
	if err := attributevalue.UnmarshalMap(result.Item, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal referral link: %w", err)
	}

	return &link, nil
}

// RecordCommission atomically creates the commission earning, claims the
// (referred user, source earning) uniqueness marker, credits the referrer's
// wallet and bumps the link's running totals. The marker condition is the
// backstop against the cascade double-firing across retried settlements.
func (s *Store) RecordCommission(ctx context.Context, commission *models.Earning) error {
	commissionAV, err := attributevalue.MarshalMap(commission)
	if err != nil {
		return fmt.Errorf("failed to marshal commission earning: %w", err)
	}
	amountAV, err := attributevalue.Marshal(commission.Amount)
	if err != nil {
		return fmt.Errorf("failed to marshal commission amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(commission.EarnedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal commission timestamp: %w", err)
	}

	marker, err := s.keyMarkerPut(commissionKey(commission.ReferredUserId, commission.SourceEarningId), commission.Id)
	if err != nil {
		return err
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: claim the per-source-earning uniqueness marker.
				Put: marker,
			},
			{
				// Operation 2: create the commission earning.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Earnings),
					Item:                commissionAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 3: credit the referrer's wallet.
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Users),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: commission.UserId}},
					UpdateExpression:    aws.String("ADD wallet_balance :amount, total_earnings :amount, referral_earnings :amount"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
					},
				},
			},
			{
				// Operation 4: bump the referral link's running totals.
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Referrals),
					Key:                 map[string]types.AttributeValue{"referred_user_id": &types.AttributeValueMemberS{Value: commission.ReferredUserId}},
					UpdateExpression:    aws.String("SET last_commission_at = :now ADD total_commissions :amount"),
					ConditionExpression: aws.String("attribute_exists(referred_user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":now":    nowAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactConditionFailedAt(err, 0) {
			return storage.ErrDuplicateCommission
		}
		return fmt.Errorf("failed to record commission: %w", err)
	}

	return nil
}

// PromoteReferralLink moves a link from pending to active and counts the
// referral as active on the referrer, in one transaction. A link that is
// already active fails the condition, so the promotion and the counter
// increment fire at most once per link.
func (s *Store) PromoteReferralLink(ctx context.Context, link *models.ReferralLink) (bool, error) {
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Referrals),
					Key:                 map[string]types.AttributeValue{"referred_user_id": &types.AttributeValueMemberS{Value: link.ReferredUserId}},
					UpdateExpression:    aws.String("SET #status = :active"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":active":  &types.AttributeValueMemberS{Value: string(models.ReferralActive)},
						":pending": &types.AttributeValueMemberS{Value: string(models.ReferralPending)},
					},
				},
			},
			{
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Users),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: link.ReferrerId}},
					UpdateExpression:    aws.String("ADD active_referrals :one"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactConditionFailedAt(err, 0) {
			return false, nil
		}
		return false, fmt.Errorf("failed to promote referral link: %w", err)
	}

	return true, nil
}
