package repository

import "errors"

// Common store errors. Implementations translate driver errors into these.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means a unique constraint was violated.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrOverlap means a date-range exclusion constraint rejected the write.
	ErrOverlap = errors.New("repository: overlapping reservation")
	// ErrStatusMismatch means the record exists but is not in the requested status.
	ErrStatusMismatch = errors.New("repository: status mismatch")
)

var (
	ErrRoomNotFound        = ErrNotFound
	ErrReservationNotFound = ErrNotFound
)
