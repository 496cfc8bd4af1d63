package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// DefaultClickTTL is how long a dispatched click waits for a postback before
// it expires.
const DefaultClickTTL = 24 * time.Hour

// Issuer creates trackable clicks for third-party offer tasks.
type Issuer struct {
	Clicks          storage.ClickStore
	Offers          storage.OfferStore
	PostbackBaseURL string
	TTL             time.Duration
	Logger          *slog.Logger
}

// NewIssuer creates a new Issuer. A zero ttl falls back to DefaultClickTTL.
func NewIssuer(clicks storage.ClickStore, offers storage.OfferStore, postbackBaseURL string, ttl time.Duration, logger *slog.Logger) *Issuer {
	if ttl <= 0 {
		ttl = DefaultClickTTL
	}
	return &Issuer{
		Clicks:          clicks,
		Offers:          offers,
		PostbackBaseURL: postbackBaseURL,
		TTL:             ttl,
		Logger:          logger,
	}
}

// newClickToken returns an opaque, collision-resistant token.
func newClickToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate click token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IssueClick creates a pending click for a user/offer pair and returns it
// with the redirect URL the client should follow. Fails with
// storage.ErrNotFound if the product does not exist. No financial effect.
func (i *Issuer) IssueClick(ctx context.Context, userID, productID, taskURL, offerID string) (*models.Click, error) {
	offer, err := i.Offers.GetOffer(ctx, productID)
	if err != nil {
		return nil, err
	}

	if taskURL == "" {
		taskURL = offer.TaskURL
	}
	if taskURL == "" {
		return nil, fmt.Errorf("%w: offer %s has no task URL", ErrValidation, productID)
	}

	token, err := newClickToken()
	if err != nil {
		return nil, err
	}

	callbackURL := fmt.Sprintf("%s/postback?click_id=%s", i.PostbackBaseURL, token)

	redirectURL, err := buildRedirectURL(taskURL, token, callbackURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid task URL: %v", ErrValidation, err)
	}

	now := time.Now()
	click := &models.Click{
		Token:       token,
		UserId:      userID,
		ProductId:   productID,
		OfferId:     offerID,
		TaskURL:     taskURL,
		RedirectURL: redirectURL,
		CallbackURL: callbackURL,
		Status:      models.ClickPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(i.TTL),
	}

	if err := i.Clicks.CreateClick(ctx, click); err != nil {
		return nil, fmt.Errorf("failed to persist click: %w", err)
	}

	i.Logger.InfoContext(ctx, "click issued",
		"click_token", token,
		"user_id", userID,
		"product_id", productID,
		"expires_at", click.ExpiresAt,
	)

	return click, nil
}

// buildRedirectURL appends the click token and callback URL as query
// parameters on the third party's task URL.
func buildRedirectURL(taskURL, token, callbackURL string) (string, error) {
	parsed, err := url.Parse(taskURL)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	query.Set("click_id", token)
	query.Set("callback", callbackURL)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
