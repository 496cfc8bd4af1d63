package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage/mocks"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/websockets"
)

func TestSettle(t *testing.T) {
	newEarning := func() *models.Earning {
		return &models.Earning{
			Id:             uuid.New().String(),
			UserId:         "user1",
			Amount:         10000,
			Status:         models.EarningPending,
			ApprovalStatus: models.AutoApproved,
		}
	}

	t.Run("First Settlement Credits And Cascades", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		referrals := new(mocks.ReferralStore)
		users := new(mocks.UserStore)
		logger := testLogger()

		cascade := NewCascade(referrals, DefaultCommissionRate, logger)
		engine := NewEngine(settlements, users, cascade, &websockets.NoOpPublisher{}, logger)

		earning := newEarning()
		settlements.On("SettleEarning", mock.Anything, earning).Return(true, nil).Once()
		referrals.On("GetReferralLinkByReferredUser", mock.Anything, "user1").Return(nil, storage.ErrNotFound).Once()
		users.On("GetUser", mock.Anything, "user1").Return(&models.User{UserId: "user1", WalletBalance: 10000}, nil).Once()

		credited, err := engine.Settle(context.Background(), earning)

		assert.NoError(t, err)
		assert.True(t, credited)
		settlements.AssertExpectations(t)
		referrals.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("Already Credited Is A No-Op", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		logger := testLogger()
		engine := NewEngine(settlements, new(mocks.UserStore), NewCascade(new(mocks.ReferralStore), 0, logger), nil, logger)

		earning := newEarning()
		creditedAt := time.Now()
		earning.CreditedAt = &creditedAt

		credited, err := engine.Settle(context.Background(), earning)

		assert.NoError(t, err)
		assert.False(t, credited)
		settlements.AssertNotCalled(t, "SettleEarning", mock.Anything, mock.Anything)
	})

	t.Run("Lost Settlement Race Skips Cascade", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		referrals := new(mocks.ReferralStore)
		logger := testLogger()
		engine := NewEngine(settlements, new(mocks.UserStore), NewCascade(referrals, 0, logger), nil, logger)

		earning := newEarning()
		settlements.On("SettleEarning", mock.Anything, earning).Return(false, nil).Once()

		credited, err := engine.Settle(context.Background(), earning)

		assert.NoError(t, err)
		assert.False(t, credited)
		referrals.AssertNotCalled(t, "GetReferralLinkByReferredUser", mock.Anything, mock.Anything)
		settlements.AssertExpectations(t)
	})

	t.Run("Cancelled Earning Cannot Settle", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		logger := testLogger()
		engine := NewEngine(settlements, new(mocks.UserStore), NewCascade(new(mocks.ReferralStore), 0, logger), nil, logger)

		earning := newEarning()
		earning.Status = models.EarningCancelled

		_, err := engine.Settle(context.Background(), earning)

		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
		settlements.AssertNotCalled(t, "SettleEarning", mock.Anything, mock.Anything)
	})

	t.Run("Commission Settlement Does Not Cascade Again", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		referrals := new(mocks.ReferralStore)
		logger := testLogger()
		engine := NewEngine(settlements, new(mocks.UserStore), NewCascade(referrals, 0, logger), nil, logger)

		earning := newEarning()
		earning.IsReferralCommission = true
		settlements.On("SettleEarning", mock.Anything, earning).Return(true, nil).Once()

		credited, err := engine.Settle(context.Background(), earning)

		assert.NoError(t, err)
		assert.True(t, credited)
		referrals.AssertNotCalled(t, "GetReferralLinkByReferredUser", mock.Anything, mock.Anything)
		settlements.AssertExpectations(t)
	})

	t.Run("Cascade Failure Never Blocks Settlement", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		referrals := new(mocks.ReferralStore)
		logger := testLogger()
		engine := NewEngine(settlements, new(mocks.UserStore), NewCascade(referrals, 0, logger), nil, logger)

		earning := newEarning()
		settlements.On("SettleEarning", mock.Anything, earning).Return(true, nil).Once()
		referrals.On("GetReferralLinkByReferredUser", mock.Anything, "user1").Return(nil, errors.New("referrals table down")).Once()

		credited, err := engine.Settle(context.Background(), earning)

		assert.NoError(t, err)
		assert.True(t, credited)
		settlements.AssertExpectations(t)
		referrals.AssertExpectations(t)
	})

	t.Run("Storage Error Propagates", func(t *testing.T) {
		settlements := new(mocks.SettlementStore)
		logger := testLogger()
		engine := NewEngine(settlements, new(mocks.UserStore), NewCascade(new(mocks.ReferralStore), 0, logger), nil, logger)

		earning := newEarning()
		settlements.On("SettleEarning", mock.Anything, earning).Return(false, errors.New("transact failed")).Once()

		credited, err := engine.Settle(context.Background(), earning)

		assert.Error(t, err)
		assert.False(t, credited)
		settlements.AssertExpectations(t)
	})
}
