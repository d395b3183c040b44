package domain

import "errors"

var (
	ErrMalformedDate       = errors.New("malformed check-in date")
	ErrUnknownReminderType = errors.New("unknown reminder type")
	ErrJobNotFound         = errors.New("scheduled job not found")
	ErrJobNotClaimable     = errors.New("scheduled job is not claimable")
	ErrJobClaimed          = errors.New("scheduled job is claimed by another delivery")
	ErrJobNotDue           = errors.New("scheduled job is not due yet")
)
