package mapping

import (
	"math"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/api"
	"github.com/Romannaveed423/smbhav-backend-sub000/pkg/models"
)

// ToCents converts a decimal currency amount to cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts cents to a decimal currency amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// ToApiEarning converts a domain Earning model to an API Earning model.
func ToApiEarning(earning *models.Earning) *api.Earning {
	id, err := uuid.Parse(earning.Id)
	if err != nil {
		id = uuid.Nil
	}
	return &api.Earning{
		Id:                   openapi_types.UUID(id),
		UserId:               earning.UserId,
		ProductId:            earning.ProductId,
		ClickToken:           earning.ClickToken,
		ConversionId:         earning.ConversionId,
		Amount:               FromCents(earning.Amount),
		Status:               string(earning.Status),
		ApprovalStatus:       string(earning.ApprovalStatus),
		EarnedAt:             earning.EarnedAt,
		CreditedAt:           earning.CreditedAt,
		IsReferralCommission: earning.IsReferralCommission,
		SourceEarningId:      earning.SourceEarningId,
		RejectionReason:      earning.RejectionReason,
	}
}

// ToApiWallet converts a domain User model to an API Wallet model.
func ToApiWallet(user *models.User) *api.Wallet {
	return &api.Wallet{
		UserId:           user.UserId,
		WalletBalance:    FromCents(user.WalletBalance),
		TotalEarnings:    FromCents(user.TotalEarnings),
		ReferralEarnings: FromCents(user.ReferralEarnings),
		ActiveReferrals:  user.ActiveReferrals,
	}
}

// ToApiDispatchClick converts an issued click to the dispatch response.
func ToApiDispatchClick(click *models.Click) *api.DispatchClickResponse {
	return &api.DispatchClickResponse{
		ClickToken:  click.Token,
		RedirectUrl: click.RedirectURL,
		TrackingUrl: click.CallbackURL,
		ExpiresAt:   click.ExpiresAt,
	}
}
