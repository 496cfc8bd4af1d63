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

// SettleEarning marks the earning completed and credits the owner's wallet in
// one write transaction. The earning update is conditioned on credited_at
// being unset; that condition is the single authorization point for a wallet
// increment, so two concurrent settlements of the same earning cannot both
// credit. The wallet mutation is an ADD, not a read-modify-write, so credits
// from unrelated earnings never lose updates either.
//
// Returns (false, nil) when another caller already settled the earning.
func (s *Store) SettleEarning(ctx context.Context, earning *models.Earning) (bool, error) {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settlement timestamp: %w", err)
	}
	amountAV, err := attributevalue.Marshal(earning.Amount)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settlement amount: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: complete the earning, exactly once.
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Earnings),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: earning.Id}},
					UpdateExpression:    aws.String("SET #status = :completed, approval_status = :approval, credited_at = :now, updated_at = :now"),
					ConditionExpression: aws.String("attribute_not_exists(credited_at) AND #status <> :cancelled"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed": &types.AttributeValueMemberS{Value: string(models.EarningCompleted)},
						":cancelled": &types.AttributeValueMemberS{Value: string(models.EarningCancelled)},
						":approval":  &types.AttributeValueMemberS{Value: string(earning.ApprovalStatus)},
						":now":       nowAV,
					},
				},
			},
			{
				// Operation 2: credit the owner's wallet.
				Update: &types.Update{
					TableName:           aws.String(s.Tables.Users),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: earning.UserId}},
					UpdateExpression:    aws.String("ADD wallet_balance :amount, total_earnings :amount"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		if transactConditionFailedAt(err, 0) {
			// Another settlement won the race; the credit already happened.
			return false, nil
		}
		return false, fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	earning.Status = models.EarningCompleted
	earning.CreditedAt = &now
	earning.UpdatedAt = now
	return true, nil
}

// ApplyAdjustment overwrites the earning's amount, appends the adjustment to
// the audit trail and, when the earning was already credited, moves the
// wallet by the difference only. The previous amount is the optimistic
// concurrency token: if the stored amount no longer matches, ErrStaleAmount
// is returned and the caller must re-read.
func (s *Store) ApplyAdjustment(ctx context.Context, earning *models.Earning, adj models.Adjustment) (*models.Earning, error) {
	nowAV, err := attributevalue.Marshal(adj.AdjustedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal adjustment timestamp: %w", err)
	}
	adjListAV, err := attributevalue.Marshal([]models.Adjustment{adj})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal adjustment entry: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName:           aws.String(s.Tables.Earnings),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: earning.Id}},
				UpdateExpression:    aws.String("SET amount = :new, adjustments = list_append(if_not_exists(adjustments, :empty), :adj), updated_at = :now"),
				ConditionExpression: aws.String("amount = :prev"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":new":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", adj.NewAmount)},
					":prev":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", adj.PreviousAmount)},
					":adj":   adjListAV,
					":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
					":now":   nowAV,
				},
			},
		},
	}

	// Only a credited earning has reached the wallet; moving the delta keeps
	// the wallet equal to the sum of its credited earnings.
	delta := adj.NewAmount - adj.PreviousAmount
	if earning.Credited() && delta != 0 {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.Tables.Users),
				Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: earning.UserId}},
				UpdateExpression:    aws.String("ADD wallet_balance :delta, total_earnings :delta"),
				ConditionExpression: aws.String("attribute_exists(user_id)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
				},
			},
		})
	}

	if _, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		if transactConditionFailedAt(err, 0) {
			return nil, storage.ErrStaleAmount
		}
		return nil, fmt.Errorf("failed to execute adjustment transaction: %w", err)
	}

	updated := *earning
	updated.Amount = adj.NewAmount
	updated.Adjustments = append(updated.Adjustments, adj)
	updated.UpdatedAt = adj.AdjustedAt
	return &updated, nil
}
