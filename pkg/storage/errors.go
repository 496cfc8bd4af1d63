package storage

import "errors"

// ErrNotFound is returned when a click, earning, user, offer or referral link
// does not exist.
var ErrNotFound = errors.New("record not found")

// ErrEarningExists is returned when creating an earning whose click token or
// conversion id is already claimed by another earning. Callers should treat
// this as "another caller already handled this" and re-fetch the winner's
// record rather than fail.
var ErrEarningExists = errors.New("earning already exists for idempotency key")

// ErrDuplicateCommission is returned when a commission keyed by the same
// (referred user, source earning) pair has already been recorded.
var ErrDuplicateCommission = errors.New("commission already recorded for source earning")

// ErrClickAlreadyFinal is returned when a click status transition fails
// because the click is no longer in the expected source state.
var ErrClickAlreadyFinal = errors.New("click already in a terminal state")

// ErrStaleAmount is returned when a manual adjustment loses a concurrent
// update race on the earning's amount.
var ErrStaleAmount = errors.New("earning amount changed concurrently")
