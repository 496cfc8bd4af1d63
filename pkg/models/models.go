package models

import (
	"time"
)

// ClickStatus defines the possible states of a click. pending is the only
// non-terminal state; converted, expired and rejected never revert.
type ClickStatus string

const (
	ClickPending   ClickStatus = "pending"
	ClickConverted ClickStatus = "converted"
	ClickExpired   ClickStatus = "expired"
	ClickRejected  ClickStatus = "rejected"
)

// Terminal reports whether the status is one a click can never leave.
func (s ClickStatus) Terminal() bool {
	return s == ClickConverted || s == ClickExpired || s == ClickRejected
}

// EarningStatus defines the lifecycle states of an earning.
type EarningStatus string

const (
	EarningPending   EarningStatus = "pending"
	EarningCompleted EarningStatus = "completed"
	EarningCancelled EarningStatus = "cancelled"
)

// ApprovalStatus tracks the review state of an earning, orthogonal to its
// lifecycle status.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	AutoApproved     ApprovalStatus = "auto_approved"
	ManuallyApproved ApprovalStatus = "manually_approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ReferralStatus defines the states of a referrer/referred relationship.
type ReferralStatus string

const (
	ReferralPending  ReferralStatus = "pending"
	ReferralActive   ReferralStatus = "active"
	ReferralInactive ReferralStatus = "inactive"
)

// Click represents one dispatch of a user to a third-party offer task.
// The click token is the primary key and is immutable after creation.
type Click struct {
	Token              string      `dynamodbav:"click_token" json:"click_token"`
	UserId             string      `dynamodbav:"user_id" json:"user_id"`
	ProductId          string      `dynamodbav:"product_id" json:"product_id"`
	OfferId            string      `dynamodbav:"offer_id,omitempty" json:"offer_id,omitempty"`
	TaskURL            string      `dynamodbav:"task_url" json:"task_url"`
	RedirectURL        string      `dynamodbav:"redirect_url" json:"redirect_url"`
	CallbackURL        string      `dynamodbav:"callback_url" json:"callback_url"`
	Status             ClickStatus `dynamodbav:"status" json:"status"`
	ConversionId       string      `dynamodbav:"conversion_id,omitempty" json:"conversion_id,omitempty"`
	CallbackReceivedAt *time.Time  `dynamodbav:"callback_received_at,omitempty" json:"callback_received_at,omitempty"`
	CreatedAt          time.Time   `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `dynamodbav:"updated_at" json:"updated_at"`
	ExpiresAt          time.Time   `dynamodbav:"expires_at" json:"expires_at"`
}

// Expired reports whether the click's TTL has passed at the given instant.
func (c *Click) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Adjustment is one entry in an earning's manual-adjustment audit trail.
type Adjustment struct {
	PreviousAmount int64     `dynamodbav:"previous_amount" json:"previous_amount"`
	NewAmount      int64     `dynamodbav:"new_amount" json:"new_amount"`
	Reason         string    `dynamodbav:"reason" json:"reason"`
	AdminId        string    `dynamodbav:"admin_id" json:"admin_id"`
	AdjustedAt     time.Time `dynamodbav:"adjusted_at" json:"adjusted_at"`
}

// Earning is one unit of money owed to a user: either a direct offer payout
// or a referral commission derived from another earning. Amounts are in cents.
//
// At most one earning exists per click token and per conversion id; a
// commission is unique per (referred user, source earning). CreditedAt is the
// single source of truth for whether the wallet has ever been paid for this
// earning.
type Earning struct {
	Id                   string         `dynamodbav:"id" json:"id"`
	UserId               string         `dynamodbav:"user_id" json:"user_id"`
	ProductId            string         `dynamodbav:"product_id,omitempty" json:"product_id,omitempty"`
	ClickToken           string         `dynamodbav:"click_token,omitempty" json:"click_token,omitempty"`
	ConversionId         string         `dynamodbav:"conversion_id,omitempty" json:"conversion_id,omitempty"`
	Amount               int64          `dynamodbav:"amount" json:"amount"`
	Status               EarningStatus  `dynamodbav:"status" json:"status"`
	ApprovalStatus       ApprovalStatus `dynamodbav:"approval_status" json:"approval_status"`
	EarnedAt             time.Time      `dynamodbav:"earned_at" json:"earned_at"`
	CreditedAt           *time.Time     `dynamodbav:"credited_at,omitempty" json:"credited_at,omitempty"`
	IsReferralCommission bool           `dynamodbav:"is_referral_commission" json:"is_referral_commission"`
	ReferredUserId       string         `dynamodbav:"referred_user_id,omitempty" json:"referred_user_id,omitempty"`
	CommissionRate       float64        `dynamodbav:"commission_rate,omitempty" json:"commission_rate,omitempty"`
	SourceEarningId      string         `dynamodbav:"source_earning_id,omitempty" json:"source_earning_id,omitempty"`
	RawPayload           string         `dynamodbav:"raw_payload,omitempty" json:"raw_payload,omitempty"`
	RejectionReason      string         `dynamodbav:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	Adjustments          []Adjustment   `dynamodbav:"adjustments,omitempty" json:"adjustments,omitempty"`
	ReviewedBy           string         `dynamodbav:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedAt           *time.Time     `dynamodbav:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	ReviewNotes          string         `dynamodbav:"review_notes,omitempty" json:"review_notes,omitempty"`
	UpdatedAt            time.Time      `dynamodbav:"updated_at" json:"updated_at"`
}

// Credited reports whether the wallet has already been paid for this earning.
func (e *Earning) Credited() bool {
	return e.CreditedAt != nil
}

// ReferralLink is the permanent relationship between a referrer and a
// referred user, created once at registration. A user has at most one
// referrer, ever.
type ReferralLink struct {
	ReferredUserId   string         `dynamodbav:"referred_user_id" json:"referred_user_id"`
	ReferrerId       string         `dynamodbav:"referrer_id" json:"referrer_id"`
	ReferralCode     string         `dynamodbav:"referral_code" json:"referral_code"`
	Status           ReferralStatus `dynamodbav:"status" json:"status"`
	TotalCommissions int64          `dynamodbav:"total_commissions" json:"total_commissions"`
	LastCommissionAt *time.Time     `dynamodbav:"last_commission_at,omitempty" json:"last_commission_at,omitempty"`
	CreatedAt        time.Time      `dynamodbav:"created_at" json:"created_at"`
}

// User is the wallet-bearing subset of the user entity. Balances are only
// ever mutated via atomic ADD increments at the storage layer.
type User struct {
	UserId           string    `dynamodbav:"user_id" json:"user_id"`
	WalletBalance    int64     `dynamodbav:"wallet_balance" json:"wallet_balance"`
	TotalEarnings    int64     `dynamodbav:"total_earnings" json:"total_earnings"`
	ReferralEarnings int64     `dynamodbav:"referral_earnings" json:"referral_earnings"`
	ActiveReferrals  int64     `dynamodbav:"active_referrals" json:"active_referrals"`
	CreatedAt        time.Time `dynamodbav:"created_at" json:"created_at"`
}

// Offer is the subset of the product catalog this service reads: the nominal
// payout (cents) used when a postback reports no amount, and the task
// destination.
type Offer struct {
	Id           string `dynamodbav:"id" json:"id"`
	Name         string `dynamodbav:"name" json:"name"`
	PayoutAmount int64  `dynamodbav:"payout_amount" json:"payout_amount"`
	TaskURL      string `dynamodbav:"task_url,omitempty" json:"task_url,omitempty"`
	Active       bool   `dynamodbav:"active" json:"active"`
}
