package storage

import (
	"context"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
)

// EarningReader defines the interface for reading earnings. The by-token and
// by-conversion lookups go through the idempotency key table and are strongly
// consistent, since stale reads here would reopen the duplicate-credit hazard.
type EarningReader interface {
	// GetEarning retrieves an earning by its id.
	GetEarning(ctx context.Context, id string) (*models.Earning, error)

	// GetEarningByClickToken retrieves the earning claimed by a click token.
	GetEarningByClickToken(ctx context.Context, token string) (*models.Earning, error)

	// GetEarningByConversionID retrieves the earning claimed by an external
	// conversion id.
	GetEarningByConversionID(ctx context.Context, conversionID string) (*models.Earning, error)

	// ListEarningsByUserID retrieves all earnings owned by a user.
	ListEarningsByUserID(ctx context.Context, userID string) ([]models.Earning, error)
}

// EarningManager defines the interface for creating and mutating earnings
// outside of settlement.
type EarningManager interface {
	// CreateEarning persists a new earning together with uniqueness markers
	// for its click token and conversion id. Returns ErrEarningExists if
	// either key is already claimed.
	CreateEarning(ctx context.Context, earning *models.Earning) error

	// CancelEarning sets the earning to cancelled/rejected with the given
	// reason. It never touches the wallet.
	CancelEarning(ctx context.Context, id, reason string) (*models.Earning, error)

	// RecordEarningReview stamps the manual-review outcome onto the earning.
	RecordEarningReview(ctx context.Context, id string, approval models.ApprovalStatus, reviewedBy, notes string) (*models.Earning, error)
}

// EarningStore combines the reader and manager interfaces.
type EarningStore interface {
	EarningReader
	EarningManager
}
