package pipeline

import "errors"

// ErrExpiredClick is returned when a postback arrives after the click's
// expiry. The click is lazily marked expired and no earning is touched.
var ErrExpiredClick = errors.New("click expired before callback arrived")

// ErrAlreadyFinalized is returned when a postback targets a click that has
// already reached a terminal status.
var ErrAlreadyFinalized = errors.New("click already finalized")

// ErrAlreadyProcessed is returned when a manual approval or rejection targets
// an earning whose review is already decided.
var ErrAlreadyProcessed = errors.New("earning already processed")

// ErrInvalidStatusTransition is returned when a report or admin action asks
// for a transition the earning state machine forbids.
var ErrInvalidStatusTransition = errors.New("invalid earning status transition")

// ErrValidation is returned for missing or invalid amounts and reasons.
var ErrValidation = errors.New("validation failed")
