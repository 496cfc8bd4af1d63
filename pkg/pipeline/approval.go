package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// Authority is the manual admin override path into settlement. It can
// approve, reject or re-price an earning regardless of how the automatic
// reconciliation left it.
type Authority struct {
	Earnings    storage.EarningStore
	Settlements storage.SettlementStore
	Engine      *Engine
	Logger      *slog.Logger
}

// NewAuthority creates a new approval Authority.
func NewAuthority(earnings storage.EarningStore, settlements storage.SettlementStore, engine *Engine, logger *slog.Logger) *Authority {
	return &Authority{Earnings: earnings, Settlements: settlements, Engine: engine, Logger: logger}
}

// Approve manually approves an earning. If it has not yet been credited, the
// settlement engine credits the wallet and runs the commission cascade; an
// earning credited earlier is left as is. The optional override amount
// re-prices the earning before settlement.
func (a *Authority) Approve(ctx context.Context, earningID, adminID string, overrideAmount *int64, notes string) (*models.Earning, error) {
	earning, err := a.Earnings.GetEarning(ctx, earningID)
	if err != nil {
		return nil, err
	}

	if earning.ApprovalStatus == models.ManuallyApproved || earning.ApprovalStatus == models.ApprovalRejected {
		return nil, fmt.Errorf("%w: earning %s is %s", ErrAlreadyProcessed, earningID, earning.ApprovalStatus)
	}

	if overrideAmount != nil && *overrideAmount != earning.Amount {
		if *overrideAmount <= 0 {
			return nil, fmt.Errorf("%w: override amount must be positive", ErrValidation)
		}
		earning, err = a.Settlements.ApplyAdjustment(ctx, earning, models.Adjustment{
			PreviousAmount: earning.Amount,
			NewAmount:      *overrideAmount,
			Reason:         "approval override",
			AdminId:        adminID,
			AdjustedAt:     time.Now(),
		})
		if err != nil {
			return nil, err
		}
	}

	earning, err = a.Earnings.RecordEarningReview(ctx, earningID, models.ManuallyApproved, adminID, notes)
	if err != nil {
		return nil, err
	}

	if !earning.Credited() {
		if _, err := a.Engine.Settle(ctx, earning); err != nil {
			return nil, err
		}
	}

	a.Logger.InfoContext(ctx, "earning manually approved",
		"earning_id", earningID,
		"admin_id", adminID,
		"amount", earning.Amount,
	)

	return earning, nil
}

// Reject cancels an earning with a mandatory reason. No wallet effect: if a
// credit was already applied, it stays applied; reversal is a separate,
// explicitly authorized accounting action, never inferred from rejection.
func (a *Authority) Reject(ctx context.Context, earningID, adminID, reason string) (*models.Earning, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	earning, err := a.Earnings.GetEarning(ctx, earningID)
	if err != nil {
		return nil, err
	}

	if earning.ApprovalStatus == models.ApprovalRejected {
		return nil, fmt.Errorf("%w: earning %s already rejected", ErrAlreadyProcessed, earningID)
	}

	if _, err := a.Earnings.CancelEarning(ctx, earningID, reason); err != nil {
		return nil, err
	}

	earning, err = a.Earnings.RecordEarningReview(ctx, earningID, models.ApprovalRejected, adminID, reason)
	if err != nil {
		return nil, err
	}

	a.Logger.InfoContext(ctx, "earning manually rejected",
		"earning_id", earningID,
		"admin_id", adminID,
		"reason", reason,
	)

	return earning, nil
}

// AdjustAmount re-prices an earning. For an earning that already paid out,
// only the difference between the new and old amount reaches the wallet.
func (a *Authority) AdjustAmount(ctx context.Context, earningID, adminID string, newAmount int64, reason string) (*models.Earning, error) {
	if newAmount <= 0 {
		return nil, fmt.Errorf("%w: adjusted amount must be positive", ErrValidation)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", ErrValidation)
	}

	earning, err := a.Earnings.GetEarning(ctx, earningID)
	if err != nil {
		return nil, err
	}

	if earning.Status == models.EarningCancelled {
		return nil, fmt.Errorf("%w: cannot adjust cancelled earning %s", ErrInvalidStatusTransition, earningID)
	}

	adjusted, err := a.Settlements.ApplyAdjustment(ctx, earning, models.Adjustment{
		PreviousAmount: earning.Amount,
		NewAmount:      newAmount,
		Reason:         reason,
		AdminId:        adminID,
		AdjustedAt:     time.Now(),
	})
	if err != nil {
		return nil, err
	}

	a.Logger.InfoContext(ctx, "earning amount adjusted",
		"earning_id", earningID,
		"admin_id", adminID,
		"previous_amount", earning.Amount,
		"new_amount", newAmount,
	)

	return adjusted, nil
}
