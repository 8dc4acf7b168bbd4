package internal

import "errors"

var (
	// ErrUnknownPolicy is returned for a policy token other than avalanche or snowball
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrInvalidMaxPeriods is returned for a negative period ceiling
	ErrInvalidMaxPeriods = errors.New("invalid max periods")

	// ErrEmptySchedule is returned when summarizing a schedule with no periods
	ErrEmptySchedule = errors.New("empty schedule")
)
