package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/websockets"
)

// Engine is the shared settlement core invoked by both the postback
// reconciler and the approval authority. Settle is idempotent: the
// credited_at condition at the storage layer guarantees one wallet credit
// per earning no matter how many callers race.
type Engine struct {
	Settlements storage.SettlementStore
	Users       storage.UserStore
	Cascade     *Cascade
	Publisher   websockets.Publisher
	Logger      *slog.Logger
}

// NewEngine creates a new settlement Engine.
func NewEngine(settlements storage.SettlementStore, users storage.UserStore, cascade *Cascade, publisher websockets.Publisher, logger *slog.Logger) *Engine {
	return &Engine{
		Settlements: settlements,
		Users:       users,
		Cascade:     cascade,
		Publisher:   publisher,
		Logger:      logger,
	}
}

// Settle transitions the earning to completed and credits the wallet exactly
// once. On the first settlement it also fires the commission cascade (for
// direct earnings only; commissions never cascade further) and pushes a
// wallet update, both best-effort. Subsequent calls return (false, nil).
func (e *Engine) Settle(ctx context.Context, earning *models.Earning) (bool, error) {
	if earning.Status == models.EarningCancelled {
		return false, fmt.Errorf("%w: cannot settle cancelled earning %s", ErrInvalidStatusTransition, earning.Id)
	}
	if earning.Credited() {
		return false, nil
	}
	if earning.ApprovalStatus == "" || earning.ApprovalStatus == models.ApprovalPending {
		earning.ApprovalStatus = models.AutoApproved
	}

	credited, err := e.Settlements.SettleEarning(ctx, earning)
	if err != nil {
		return false, err
	}
	if !credited {
		return false, nil
	}

	e.Logger.InfoContext(ctx, "earning settled",
		"earning_id", earning.Id,
		"user_id", earning.UserId,
		"amount", earning.Amount,
		"is_referral_commission", earning.IsReferralCommission,
	)

	if !earning.IsReferralCommission {
		e.Cascade.Run(ctx, earning)
	}

	e.notifyWalletUpdate(ctx, earning)

	return true, nil
}

// notifyWalletUpdate pushes the new balance to connected clients. Failures
// never affect the settlement.
func (e *Engine) notifyWalletUpdate(ctx context.Context, earning *models.Earning) {
	if e.Publisher == nil {
		return
	}
	bestEffort(ctx, e.Logger, "wallet update push", func() error {
		user, err := e.Users.GetUser(ctx, earning.UserId)
		if err != nil {
			return err
		}
		return e.Publisher.Publish(ctx, websockets.Message{
			Type: websockets.MessageTypeWalletUpdate,
			Payload: websockets.WalletUpdatePayload{
				UserID:     earning.UserId,
				EarningID:  earning.Id,
				Change:     earning.Amount,
				NewBalance: user.WalletBalance,
			},
		})
	})
}
