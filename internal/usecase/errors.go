package usecase

import "errors"

// Error kinds returned by services. Callers match them with errors.Is; the wrapped
// message carries the specific reason.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrInvalidState        = errors.New("invalid booking state")
	ErrNoAvailability      = errors.New("no slot available")
	ErrPersistence         = errors.New("storage failure")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrDataIntegrity       = errors.New("data integrity violation")
)
