package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// DefaultCommissionRate is applied when no rate is configured.
const DefaultCommissionRate = 0.10

// CommissionRateFromEnv reads COMMISSION_RATE. Every binary that builds a
// Cascade goes through this, so the synchronous path and the retry path pay
// the same rate. Unset falls back to DefaultCommissionRate; a malformed value
// is an error so misconfiguration fails at startup instead of underpaying.
func CommissionRateFromEnv() (float64, error) {
	raw := os.Getenv("COMMISSION_RATE")
	if raw == "" {
		return DefaultCommissionRate, nil
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid COMMISSION_RATE %q: %w", raw, err)
	}
	return rate, nil
}

// Cascade derives a referrer's commission earning from a referred user's
// first-time settlement. The whole cascade runs under a log-and-continue
// policy: a commission failure must never block the earner's settlement.
type Cascade struct {
	Referrals storage.ReferralStore
	Rate      float64
	Logger    *slog.Logger
}

// NewCascade creates a new commission Cascade. A non-positive rate falls
// back to DefaultCommissionRate.
func NewCascade(referrals storage.ReferralStore, rate float64, logger *slog.Logger) *Cascade {
	if rate <= 0 {
		rate = DefaultCommissionRate
	}
	return &Cascade{Referrals: referrals, Rate: rate, Logger: logger}
}

// CommissionAmount computes the commission in cents, rounded to the nearest
// cent.
func CommissionAmount(amount int64, rate float64) int64 {
	return int64(math.Round(float64(amount) * rate))
}

// Run cascades a commission for a settled earning, swallowing all errors.
func (c *Cascade) Run(ctx context.Context, source *models.Earning) {
	bestEffort(ctx, c.Logger, "commission cascade", func() error {
		return c.cascade(ctx, source)
	})
}

func (c *Cascade) cascade(ctx context.Context, source *models.Earning) error {
	link, err := c.Referrals.GetReferralLinkByReferredUser(ctx, source.UserId)
	if errors.Is(err, storage.ErrNotFound) {
		// No referrer means no commission; not an error.
		return nil
	}
	if err != nil {
		return err
	}

	amount := CommissionAmount(source.Amount, c.Rate)
	if amount <= 0 {
		return nil
	}

	now := time.Now()
	commission := &models.Earning{
		Id:                   uuid.New().String(),
		UserId:               link.ReferrerId,
		ProductId:            source.ProductId,
		ClickToken:           source.ClickToken,
		ConversionId:         "ref:" + source.Id,
		Amount:               amount,
		Status:               models.EarningCompleted,
		ApprovalStatus:       models.AutoApproved,
		EarnedAt:             now,
		CreditedAt:           &now,
		IsReferralCommission: true,
		ReferredUserId:       source.UserId,
		CommissionRate:       c.Rate,
		SourceEarningId:      source.Id,
		UpdatedAt:            now,
	}

	if err := c.Referrals.RecordCommission(ctx, commission); err != nil {
		if errors.Is(err, storage.ErrDuplicateCommission) {
			// A retried settlement already paid this commission.
			return nil
		}
		return err
	}

	c.Logger.InfoContext(ctx, "commission recorded",
		"referrer_id", link.ReferrerId,
		"referred_user_id", source.UserId,
		"source_earning_id", source.Id,
		"amount", amount,
	)

	if link.Status == models.ReferralPending {
		promoted, err := c.Referrals.PromoteReferralLink(ctx, link)
		if err != nil {
			return err
		}
		if promoted {
			c.Logger.InfoContext(ctx, "referral link activated",
				"referrer_id", link.ReferrerId,
				"referred_user_id", link.ReferredUserId,
			)
		}
	}

	return nil
}
