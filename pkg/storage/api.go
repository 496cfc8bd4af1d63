package storage

// ApiStore defines the set of non-privileged operations needed by the HTTP
// API. It composes other interfaces to provide a clear boundary for the API's
// data access; anything that moves money lives behind SettlementStore and
// ReferralStore instead.
type ApiStore interface {
	ClickStore
	EarningStore
	UserStore
	OfferStore
}
