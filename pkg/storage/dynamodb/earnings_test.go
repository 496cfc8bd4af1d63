package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/dynamodb/mocks"
)

func TestGetEarning(t *testing.T) {
	earningID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		earning := &models.Earning{Id: earningID, UserId: "user1", Amount: 10000}
		earningAV, _ := attributevalue.MarshalMap(earning)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.GetItemInput) bool {
			return input.ConsistentRead != nil && *input.ConsistentRead
		})).Return(&dynamodb.GetItemOutput{Item: earningAV}, nil).Once()

		got, err := store.GetEarning(context.Background(), earningID)

		assert.NoError(t, err)
		assert.Equal(t, earningID, got.Id)
		assert.Equal(t, int64(10000), got.Amount)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		_, err := store.GetEarning(context.Background(), earningID)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestGetEarningByClickToken(t *testing.T) {
	earningID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		// First read resolves the marker, second reads the earning itself.
		markerAV, _ := attributevalue.MarshalMap(earningKey{Key: clickKey("tok123"), EarningId: earningID})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: markerAV}, nil).Once()

		earning := &models.Earning{Id: earningID, ClickToken: "tok123"}
		earningAV, _ := attributevalue.MarshalMap(earning)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: earningAV}, nil).Once()

		got, err := store.GetEarningByClickToken(context.Background(), "tok123")

		assert.NoError(t, err)
		assert.Equal(t, earningID, got.Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("No Marker", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		_, err := store.GetEarningByClickToken(context.Background(), "tok123")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestListEarningsByUserID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		first, _ := attributevalue.MarshalMap(models.Earning{Id: "e1", UserId: "user1"})
		second, _ := attributevalue.MarshalMap(models.Earning{Id: "e2", UserId: "user1"})
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return *input.IndexName == earningUserIDIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{first, second}}, nil).Once()

		got, err := store.ListEarningsByUserID(context.Background(), "user1")

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "e1", got[0].Id)
		mockClient.AssertExpectations(t)
	})

	t.Run("Query Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down"))

		_, err := store.ListEarningsByUserID(context.Background(), "user1")

		assert.Error(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestCancelEarning(t *testing.T) {
	earningID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		cancelled := &models.Earning{Id: earningID, Status: models.EarningCancelled, ApprovalStatus: models.ApprovalRejected, RejectionReason: "fraud"}
		cancelledAV, _ := attributevalue.MarshalMap(cancelled)
		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{Attributes: cancelledAV}, nil).Once()

		got, err := store.CancelEarning(context.Background(), earningID, "fraud")

		assert.NoError(t, err)
		assert.Equal(t, models.EarningCancelled, got.Status)
		assert.Equal(t, "fraud", got.RejectionReason)
		mockClient.AssertExpectations(t)
	})

	t.Run("DynamoDB Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down"))

		_, err := store.CancelEarning(context.Background(), earningID, "fraud")

		assert.Error(t, err)
		mockClient.AssertExpectations(t)
	})
}

func TestRecordEarningReview(t *testing.T) {
	earningID := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		reviewed := &models.Earning{Id: earningID, ApprovalStatus: models.ManuallyApproved, ReviewedBy: "admin1"}
		reviewedAV, _ := attributevalue.MarshalMap(reviewed)
		mockClient.On("UpdateItem", mock.Anything, mock.AnythingOfType("*dynamodb.UpdateItemInput")).Return(&dynamodb.UpdateItemOutput{Attributes: reviewedAV}, nil).Once()

		got, err := store.RecordEarningReview(context.Background(), earningID, models.ManuallyApproved, "admin1", "looks legit")

		assert.NoError(t, err)
		assert.Equal(t, models.ManuallyApproved, got.ApprovalStatus)
		assert.Equal(t, "admin1", got.ReviewedBy)
		mockClient.AssertExpectations(t)
	})
}
