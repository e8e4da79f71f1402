package service

import "errors"

// Every failure leaving this package wraps exactly one of these sentinels.
var (
	// ErrSlotNotFound: the hospital/time combination has no slot. Terminal.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotTaken: the slot exists but is already reserved. Terminal.
	ErrSlotTaken = errors.New("slot already reserved")
	// ErrInvalidRequest: malformed input, rejected before any storage access.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnavailable: storage fault, lock timeout, or aborted transaction.
	// The whole unit of work rolled back, so the caller may retry as-is.
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// IsRetryable reports whether the same request may be safely resubmitted.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
