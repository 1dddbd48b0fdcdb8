package timecard

import "errors"

var (
	ErrRecordNotFound        = errors.New("time record not found")
	ErrCheckOutBeforeCheckIn = errors.New("check-out cannot be before check-in on a same-day record")
	ErrNoTimesToSwap         = errors.New("record needs both a check-in and a check-out to swap")
	ErrNegativePenalty       = errors.New("penalty minutes cannot be negative")
	ErrDuplicateRecord       = errors.New("a record already exists for this employee and date")
	ErrNothingToApprove      = errors.New("no record ids supplied for approval")
)
