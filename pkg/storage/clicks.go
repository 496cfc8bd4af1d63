package storage

import (
	"context"
	"time"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
)

// ClickReader defines the interface for reading click data.
type ClickReader interface {
	// GetClickByToken retrieves a click by its token.
	GetClickByToken(ctx context.Context, token string) (*models.Click, error)

	// ListExpiredPendingClicks retrieves pending clicks whose expiry passed
	// before the given instant, up to limit records.
	ListExpiredPendingClicks(ctx context.Context, now time.Time, limit int32) ([]models.Click, error)
}

// ClickManager defines the interface for creating and transitioning clicks.
type ClickManager interface {
	// CreateClick persists a new click. The token must be unique.
	CreateClick(ctx context.Context, click *models.Click) error

	// TransitionClick atomically moves a click from one status to another and
	// optionally records the conversion id reported by the partner. It returns
	// ErrClickAlreadyFinal if the click is no longer in the source status.
	TransitionClick(ctx context.Context, token string, from, to models.ClickStatus, conversionID string) error
}

// ClickStore combines the reader and manager interfaces.
type ClickStore interface {
	ClickReader
	ClickManager
}
