package storage

import (
	"context"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
)

// SettlementStore defines the highly-privileged interface that moves money.
// Both operations pair a conditional update of the earning with atomic ADD
// increments on the owner's wallet in a single storage transaction, so a
// credit can never be applied without the earning recording it, or twice.
type SettlementStore interface {
	// SettleEarning marks the earning completed and credits the owner's
	// wallet. The update is conditioned on credited_at being unset; if another
	// caller already settled it, SettleEarning performs nothing and returns
	// false with a nil error.
	SettleEarning(ctx context.Context, earning *models.Earning) (bool, error)

	// ApplyAdjustment overwrites the earning's amount and appends the
	// adjustment to its audit trail. If the earning has already been credited,
	// the wallet is moved by the difference only. The previous amount acts as
	// an optimistic-concurrency token; ErrStaleAmount is returned if it no
	// longer matches.
	ApplyAdjustment(ctx context.Context, earning *models.Earning, adj models.Adjustment) (*models.Earning, error)
}
