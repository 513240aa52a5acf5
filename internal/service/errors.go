package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns wraps exactly one of these, so
// callers can branch with errors.Is on the kind.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrBusinessRule   = errors.New("business rule violated")
	ErrInternalServer = errors.New("internal server error")
)

var (
	ErrRoomNotFound    = fmt.Errorf("%w: room not found", ErrNotFound)
	ErrRoomNumberTaken = fmt.Errorf("%w: room number already exists", ErrConflict)

	// ErrReservationNotFound and ErrReservationWrongState both surface as
	// "not found" to clients; they are distinct so tests and logs can tell
	// an unknown id from a reservation in the wrong status.
	ErrReservationNotFound   = fmt.Errorf("%w: reservation not found", ErrNotFound)
	ErrReservationWrongState = fmt.Errorf("%w: reservation not found in required status", ErrNotFound)

	ErrRoomUnavailable         = fmt.Errorf("%w: room not available for the selected dates", ErrConflict)
	ErrCheckoutNotAfterCheckin = fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	ErrCheckinInPast           = fmt.Errorf("%w: check-in date cannot be in the past", ErrValidation)
	ErrEarlyCheckIn            = fmt.Errorf("%w: check-in is only allowed from 1 day before the expected date", ErrBusinessRule)
)

// validationError wraps a field-level message in ErrValidation.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
