// Package api holds the transport-level request and response types for the
// click-attribution service. Amounts cross the wire as decimal currency
// units; the domain carries cents.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// DispatchClickRequest is the body for POST /offers/{productId}/click.
type DispatchClickRequest struct {
	TaskUrl string `json:"taskUrl,omitempty"`
	OfferId string `json:"offerId,omitempty"`
}

// DispatchClickResponse is the click issued for a dispatch request.
type DispatchClickResponse struct {
	ClickToken  string    `json:"clickToken"`
	RedirectUrl string    `json:"redirectUrl"`
	TrackingUrl string    `json:"trackingUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// PostbackResponse is always success-shaped, regardless of the internal
// outcome, to keep partner retry behavior predictable.
type PostbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ApproveEarningRequest is the body for POST /admin/earnings/{id}/approve.
type ApproveEarningRequest struct {
	Amount *float64 `json:"amount,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// RejectEarningRequest is the body for POST /admin/earnings/{id}/reject.
type RejectEarningRequest struct {
	Reason string `json:"reason"`
}

// AdjustEarningRequest is the body for POST /admin/earnings/{id}/adjust.
type AdjustEarningRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// Earning is the API representation of an earning.
type Earning struct {
	Id                   openapi_types.UUID `json:"id"`
	UserId               string             `json:"userId"`
	ProductId            string             `json:"productId,omitempty"`
	ClickToken           string             `json:"clickToken,omitempty"`
	ConversionId         string             `json:"conversionId,omitempty"`
	Amount               float64            `json:"amount"`
	Status               string             `json:"status"`
	ApprovalStatus       string             `json:"approvalStatus"`
	EarnedAt             time.Time          `json:"earnedAt"`
	CreditedAt           *time.Time         `json:"creditedAt,omitempty"`
	IsReferralCommission bool               `json:"isReferralCommission"`
	SourceEarningId      string             `json:"sourceEarningId,omitempty"`
	RejectionReason      string             `json:"rejectionReason,omitempty"`
}

// Wallet is the API representation of a user's wallet counters.
type Wallet struct {
	UserId           string  `json:"userId"`
	WalletBalance    float64 `json:"walletBalance"`
	TotalEarnings    float64 `json:"totalEarnings"`
	ReferralEarnings float64 `json:"referralEarnings"`
	ActiveReferrals  int64   `json:"activeReferrals"`
}
