package storage

import (
	"context"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
)

// ReferralStore defines the interface for referral links and commission
// recording.
type ReferralStore interface {
	// GetReferralLinkByReferredUser retrieves the referral link for a referred
	// user. Returns ErrNotFound if the user has no referrer.
	GetReferralLinkByReferredUser(ctx context.Context, userID string) (*models.ReferralLink, error)

	// RecordCommission atomically creates the commission earning, claims the
	// (referred user, source earning) uniqueness marker, credits the
	// referrer's wallet and bumps the link's running totals. Returns
	// ErrDuplicateCommission if the marker is already claimed.
	RecordCommission(ctx context.Context, commission *models.Earning) error

	// PromoteReferralLink moves the link from pending to active and increments
	// the referrer's active-referrals counter. Returns false if the link was
	// already active, so the promotion fires at most once per link.
	PromoteReferralLink(ctx context.Context, link *models.ReferralLink) (bool, error)
}
