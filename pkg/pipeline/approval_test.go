package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/mocks"
)

type authorityFixture struct {
	earnings    *mocks.EarningStore
	settlements *mocks.SettlementStore
	referrals   *mocks.ReferralStore
	authority   *Authority
}

func newAuthorityFixture() *authorityFixture {
	f := &authorityFixture{
		earnings:    new(mocks.EarningStore),
		settlements: new(mocks.SettlementStore),
		referrals:   new(mocks.ReferralStore),
	}
	logger := testLogger()
	cascade := NewCascade(f.referrals, DefaultCommissionRate, logger)
	engine := NewEngine(f.settlements, new(mocks.UserStore), cascade, nil, logger)
	f.authority = NewAuthority(f.earnings, f.settlements, engine, logger)
	return f
}

func TestApprove(t *testing.T) {
	earningID := uuid.New().String()

	pendingEarning := func() *models.Earning {
		return &models.Earning{
			Id:             earningID,
			UserId:         "user1",
			Amount:         5000,
			Status:         models.EarningPending,
			ApprovalStatus: models.ApprovalPending,
		}
	}

	t.Run("Approval Settles Uncredited Earning", func(t *testing.T) {
		f := newAuthorityFixture()

		earning := pendingEarning()
		reviewed := *earning
		reviewed.ApprovalStatus = models.ManuallyApproved

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()
		f.earnings.On("RecordEarningReview", mock.Anything, earningID, models.ManuallyApproved, "admin1", "verified manually").Return(&reviewed, nil).Once()
		f.settlements.On("SettleEarning", mock.Anything, &reviewed).Return(true, nil).Once()
		f.referrals.On("GetReferralLinkByReferredUser", mock.Anything, "user1").Return(nil, storage.ErrNotFound).Once()

		got, err := f.authority.Approve(context.Background(), earningID, "admin1", nil, "verified manually")

		assert.NoError(t, err)
		assert.Equal(t, models.ManuallyApproved, got.ApprovalStatus)
		f.earnings.AssertExpectations(t)
		f.settlements.AssertExpectations(t)
	})

	t.Run("Approval Of Credited Earning Leaves Wallet Alone", func(t *testing.T) {
		f := newAuthorityFixture()

		earning := pendingEarning()
		creditedAt := time.Now()
		reviewed := *earning
		reviewed.ApprovalStatus = models.ManuallyApproved
		reviewed.CreditedAt = &creditedAt
		reviewed.Status = models.EarningCompleted

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()
		f.earnings.On("RecordEarningReview", mock.Anything, earningID, models.ManuallyApproved, "admin1", "").Return(&reviewed, nil).Once()

		_, err := f.authority.Approve(context.Background(), earningID, "admin1", nil, "")

		assert.NoError(t, err)
		f.settlements.AssertNotCalled(t, "SettleEarning", mock.Anything, mock.Anything)
		f.earnings.AssertExpectations(t)
	})

	t.Run("Override Amount Re-Prices Before Settling", func(t *testing.T) {
		f := newAuthorityFixture()

		earning := pendingEarning()
		adjusted := *earning
		adjusted.Amount = 7000
		reviewed := adjusted
		reviewed.ApprovalStatus = models.ManuallyApproved

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()
		f.settlements.On("ApplyAdjustment", mock.Anything, earning, mock.MatchedBy(func(adj models.Adjustment) bool {
			return adj.PreviousAmount == 5000 && adj.NewAmount == 7000 && adj.AdminId == "admin1"
		})).Return(&adjusted, nil).Once()
		f.earnings.On("RecordEarningReview", mock.Anything, earningID, models.ManuallyApproved, "admin1", "").Return(&reviewed, nil).Once()
		f.settlements.On("SettleEarning", mock.Anything, &reviewed).Return(true, nil).Once()
		f.referrals.On("GetReferralLinkByReferredUser", mock.Anything, "user1").Return(nil, storage.ErrNotFound).Once()

		override := int64(7000)
		got, err := f.authority.Approve(context.Background(), earningID, "admin1", &override, "")

		assert.NoError(t, err)
		assert.Equal(t, int64(7000), got.Amount)
		f.settlements.AssertExpectations(t)
	})

	t.Run("Already Reviewed", func(t *testing.T) {
		f := newAuthorityFixture()

		earning := pendingEarning()
		earning.ApprovalStatus = models.ManuallyApproved

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()

		_, err := f.authority.Approve(context.Background(), earningID, "admin1", nil, "")

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		f.earnings.AssertExpectations(t)
	})

	t.Run("Non-Positive Override Rejected", func(t *testing.T) {
		f := newAuthorityFixture()

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(pendingEarning(), nil).Once()

		override := int64(-100)
		_, err := f.authority.Approve(context.Background(), earningID, "admin1", &override, "")

		assert.ErrorIs(t, err, ErrValidation)
		f.settlements.AssertNotCalled(t, "ApplyAdjustment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReject(t *testing.T) {
	earningID := uuid.New().String()

	t.Run("Rejection Requires A Reason", func(t *testing.T) {
		f := newAuthorityFixture()

		_, err := f.authority.Reject(context.Background(), earningID, "admin1", "")

		assert.ErrorIs(t, err, ErrValidation)
		f.earnings.AssertNotCalled(t, "GetEarning", mock.Anything, mock.Anything)
	})

	t.Run("Rejection Cancels Without Touching The Wallet", func(t *testing.T) {
		f := newAuthorityFixture()

		creditedAt := time.Now()
		earning := &models.Earning{
			Id:             earningID,
			UserId:         "user1",
			Amount:         5000,
			Status:         models.EarningCompleted,
			ApprovalStatus: models.AutoApproved,
			CreditedAt:     &creditedAt,
		}
		cancelled := *earning
		cancelled.Status = models.EarningCancelled
		reviewed := cancelled
		reviewed.ApprovalStatus = models.ApprovalRejected

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()
		f.earnings.On("CancelEarning", mock.Anything, earningID, "fraudulent activity").Return(&cancelled, nil).Once()
		f.earnings.On("RecordEarningReview", mock.Anything, earningID, models.ApprovalRejected, "admin1", "fraudulent activity").Return(&reviewed, nil).Once()

		got, err := f.authority.Reject(context.Background(), earningID, "admin1", "fraudulent activity")

		assert.NoError(t, err)
		assert.Equal(t, models.ApprovalRejected, got.ApprovalStatus)
		// An already-applied credit stays applied; no settlement-store calls.
		f.settlements.AssertNotCalled(t, "SettleEarning", mock.Anything, mock.Anything)
		f.settlements.AssertNotCalled(t, "ApplyAdjustment", mock.Anything, mock.Anything, mock.Anything)
		f.earnings.AssertExpectations(t)
	})

	t.Run("Already Rejected", func(t *testing.T) {
		f := newAuthorityFixture()

		earning := &models.Earning{Id: earningID, ApprovalStatus: models.ApprovalRejected}
		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()

		_, err := f.authority.Reject(context.Background(), earningID, "admin1", "dup")

		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		f.earnings.AssertExpectations(t)
	})
}

func TestAdjustAmount(t *testing.T) {
	earningID := uuid.New().String()

	t.Run("Adjustment Moves The Delta", func(t *testing.T) {
		f := newAuthorityFixture()

		creditedAt := time.Now()
		earning := &models.Earning{
			Id:         earningID,
			UserId:     "user1",
			Amount:     5000,
			Status:     models.EarningCompleted,
			CreditedAt: &creditedAt,
		}
		adjusted := *earning
		adjusted.Amount = 7000

		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()
		f.settlements.On("ApplyAdjustment", mock.Anything, earning, mock.MatchedBy(func(adj models.Adjustment) bool {
			return adj.PreviousAmount == 5000 && adj.NewAmount == 7000 && adj.Reason == "partner re-priced"
		})).Return(&adjusted, nil).Once()

		got, err := f.authority.AdjustAmount(context.Background(), earningID, "admin1", 7000, "partner re-priced")

		assert.NoError(t, err)
		assert.Equal(t, int64(7000), got.Amount)
		f.settlements.AssertExpectations(t)
	})

	t.Run("Cancelled Earning Cannot Be Adjusted", func(t *testing.T) {
		f := newAuthorityFixture()

		earning := &models.Earning{Id: earningID, Amount: 5000, Status: models.EarningCancelled}
		f.earnings.On("GetEarning", mock.Anything, earningID).Return(earning, nil).Once()

		_, err := f.authority.AdjustAmount(context.Background(), earningID, "admin1", 7000, "late change")

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		f.settlements.AssertNotCalled(t, "ApplyAdjustment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Validation", func(t *testing.T) {
		f := newAuthorityFixture()

		_, err := f.authority.AdjustAmount(context.Background(), earningID, "admin1", 0, "reason")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = f.authority.AdjustAmount(context.Background(), earningID, "admin1", 7000, "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
