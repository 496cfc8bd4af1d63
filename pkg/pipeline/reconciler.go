package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/storage"
)

// Outcome is the normalized verdict carried by a postback.
type Outcome int

const (
	// OutcomePending means the partner has registered the action but not yet
	// confirmed it.
	OutcomePending Outcome = iota
	// OutcomeSuccess means the offer task completed and should pay out.
	OutcomeSuccess
	// OutcomeFailure means the partner explicitly reported failure.
	OutcomeFailure
)

// ParseOutcome maps the loosely-specified status strings offer networks send
// to an Outcome. Unknown values are treated as pending, not failure: networks
// resend with a definitive status later.
func ParseOutcome(status string) Outcome {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "1", "success", "approved", "completed", "converted", "credited", "ok":
		return OutcomeSuccess
	case "0", "failed", "failure", "rejected", "cancelled", "canceled", "chargeback", "reversed":
		return OutcomeFailure
	default:
		return OutcomePending
	}
}

// PostbackReport is one server-to-server callback from an offer partner.
type PostbackReport struct {
	ClickToken   string `json:"click_token"`
	Status       string `json:"status"`
	Amount       *int64 `json:"amount,omitempty"` // cents; nil means fall back to the offer's payout
	ConversionId string `json:"conversion_id,omitempty"`
	RawPayload   string `json:"raw_payload,omitempty"`
}

// ReconcileResult reports the earning state a postback resolved to.
type ReconcileResult struct {
	EarningId     string
	EarningStatus models.EarningStatus
	ClickStatus   models.ClickStatus
	Amount        int64
}

// Reconciler resolves postbacks into earnings, exactly once per click token
// and per conversion id.
type Reconciler struct {
	Clicks   storage.ClickStore
	Earnings storage.EarningStore
	Offers   storage.OfferStore
	Engine   *Engine
	Logger   *slog.Logger
}

// NewReconciler creates a new Reconciler.
func NewReconciler(clicks storage.ClickStore, earnings storage.EarningStore, offers storage.OfferStore, engine *Engine, logger *slog.Logger) *Reconciler {
	return &Reconciler{Clicks: clicks, Earnings: earnings, Offers: offers, Engine: engine, Logger: logger}
}

// Reconcile processes one postback. Duplicated and retried callbacks resolve
// to the earning created by the first one; the wallet is credited at most
// once regardless of how often the partner resends.
func (r *Reconciler) Reconcile(ctx context.Context, report PostbackReport) (*ReconcileResult, error) {
	click, err := r.Clicks.GetClickByToken(ctx, report.ClickToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Lazy expiry: a late callback finalizes the click and touches nothing
	// else.
	if click.Status == models.ClickPending && click.Expired(now) {
		if err := r.Clicks.TransitionClick(ctx, click.Token, models.ClickPending, models.ClickExpired, ""); err != nil && !errors.Is(err, storage.ErrClickAlreadyFinal) {
			r.Logger.ErrorContext(ctx, "failed to mark click expired", "click_token", click.Token, "error", err)
		}
		return nil, ErrExpiredClick
	}

	if click.Status == models.ClickExpired {
		return nil, ErrExpiredClick
	}
	if click.Status.Terminal() {
		return nil, fmt.Errorf("%w: click %s is %s", ErrAlreadyFinalized, click.Token, click.Status)
	}

	outcome := ParseOutcome(report.Status)

	existing, err := r.findEarning(ctx, report)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return r.createEarning(ctx, click, report, outcome, now)
	}
	return r.applyToExisting(ctx, click, existing, report, outcome)
}

// findEarning resolves the idempotency key for a report: an earning matched
// by conversion id wins over one matched by click token, so partners can
// resend the same conversion without creating duplicates.
func (r *Reconciler) findEarning(ctx context.Context, report PostbackReport) (*models.Earning, error) {
	if report.ConversionId != "" {
		earning, err := r.Earnings.GetEarningByConversionID(ctx, report.ConversionId)
		if err == nil {
			return earning, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	earning, err := r.Earnings.GetEarningByClickToken(ctx, report.ClickToken)
	if err == nil {
		return earning, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	return nil, nil
}

// resolveAmount prefers the partner-reported amount, falling back to the
// offer's nominal payout.
func (r *Reconciler) resolveAmount(ctx context.Context, click *models.Click, report PostbackReport) (int64, error) {
	if report.Amount != nil && *report.Amount > 0 {
		return *report.Amount, nil
	}
	offer, err := r.Offers.GetOffer(ctx, click.ProductId)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve payout for product %s: %w", click.ProductId, err)
	}
	return offer.PayoutAmount, nil
}

// createEarning handles the first callback seen for a click: it creates the
// earning, settles it when the report is a success, and finalizes the click
// on a definitive outcome. An indeterminate report leaves the click pending
// so the partner's follow-up callback can still resolve it either way.
func (r *Reconciler) createEarning(ctx context.Context, click *models.Click, report PostbackReport, outcome Outcome, now time.Time) (*ReconcileResult, error) {
	amount, err := r.resolveAmount(ctx, click, report)
	if err != nil {
		return nil, err
	}

	earning := &models.Earning{
		Id:             uuid.New().String(),
		UserId:         click.UserId,
		ProductId:      click.ProductId,
		ClickToken:     click.Token,
		ConversionId:   report.ConversionId,
		Amount:         amount,
		Status:         models.EarningPending,
		ApprovalStatus: models.ApprovalPending,
		EarnedAt:       now,
		RawPayload:     report.RawPayload,
		UpdatedAt:      now,
	}

	switch outcome {
	case OutcomeSuccess:
		earning.ApprovalStatus = models.AutoApproved
	case OutcomeFailure:
		earning.Status = models.EarningCancelled
		earning.ApprovalStatus = models.ApprovalRejected
		earning.RejectionReason = fmt.Sprintf("partner reported %q", report.Status)
	}

	if err := r.Earnings.CreateEarning(ctx, earning); err != nil {
		if errors.Is(err, storage.ErrEarningExists) {
			// Lost a concurrent-creation race; the winner's record is the
			// earning for this click, so continue as a resend.
			winner, findErr := r.findEarning(ctx, report)
			if findErr != nil {
				return nil, findErr
			}
			if winner == nil {
				return nil, fmt.Errorf("earning exists but could not be found for click %s", click.Token)
			}
			return r.applyToExisting(ctx, click, winner, report, outcome)
		}
		return nil, err
	}

	switch outcome {
	case OutcomeSuccess:
		if _, err := r.Engine.Settle(ctx, earning); err != nil {
			return nil, err
		}
		r.finalizeClick(ctx, click, models.ClickConverted, report.ConversionId)
	case OutcomeFailure:
		r.finalizeClick(ctx, click, models.ClickRejected, report.ConversionId)
	case OutcomePending:
		// The click stays open: the partner has not decided yet, and the
		// definitive callback that follows must still be able to finalize it.
	}

	r.Logger.InfoContext(ctx, "postback reconciled",
		"click_token", click.Token,
		"earning_id", earning.Id,
		"status", earning.Status,
		"amount", earning.Amount,
	)

	return &ReconcileResult{
		EarningId:     earning.Id,
		EarningStatus: earning.Status,
		ClickStatus:   click.Status,
		Amount:        earning.Amount,
	}, nil
}

// applyToExisting handles resends and later confirmations for an earning
// created by an earlier callback.
func (r *Reconciler) applyToExisting(ctx context.Context, click *models.Click, earning *models.Earning, report PostbackReport, outcome Outcome) (*ReconcileResult, error) {
	switch outcome {
	case OutcomeSuccess:
		if earning.Status == models.EarningCancelled {
			return nil, fmt.Errorf("%w: success reported for cancelled earning %s", ErrInvalidStatusTransition, earning.Id)
		}
		if earning.ApprovalStatus == models.ApprovalPending {
			earning.ApprovalStatus = models.AutoApproved
		}
		// Settle is a no-op when the earning has already been credited.
		if _, err := r.Engine.Settle(ctx, earning); err != nil {
			return nil, err
		}
		r.finalizeClick(ctx, click, models.ClickConverted, report.ConversionId)

	case OutcomeFailure:
		if earning.Status == models.EarningCompleted {
			return nil, fmt.Errorf("%w: failure reported for completed earning %s", ErrInvalidStatusTransition, earning.Id)
		}
		if earning.Status == models.EarningPending {
			cancelled, err := r.Earnings.CancelEarning(ctx, earning.Id, fmt.Sprintf("partner reported %q", report.Status))
			if err != nil {
				return nil, err
			}
			earning = cancelled
		}
		r.finalizeClick(ctx, click, models.ClickRejected, report.ConversionId)

	case OutcomePending:
		// Nothing new to apply; report the current state back.
	}

	return &ReconcileResult{
		EarningId:     earning.Id,
		EarningStatus: earning.Status,
		ClickStatus:   click.Status,
		Amount:        earning.Amount,
	}, nil
}

// finalizeClick advances a pending click to its terminal status. A click
// already finalized by a concurrent reconciliation is not an error.
func (r *Reconciler) finalizeClick(ctx context.Context, click *models.Click, to models.ClickStatus, conversionID string) {
	if click.Status != models.ClickPending {
		return
	}
	err := r.Clicks.TransitionClick(ctx, click.Token, models.ClickPending, to, conversionID)
	if err != nil && !errors.Is(err, storage.ErrClickAlreadyFinal) {
		r.Logger.ErrorContext(ctx, "failed to finalize click", "click_token", click.Token, "to", to, "error", err)
	}
	click.Status = to
}
