package storage

import (
	"context"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
)

// UserStore defines the read-side interface for user wallets. Wallet balances
// are never written through this interface; every increment happens inside
// SettlementStore or ReferralStore transactions.
type UserStore interface {
	// GetUser retrieves a user's wallet fields by user id.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// OfferStore defines the read-side interface for the offer catalog.
type OfferStore interface {
	// GetOffer retrieves an offer by its id. Returns ErrNotFound if the offer
	// does not exist.
	GetOffer(ctx context.Context, offerID string) (*models.Offer, error)
}
