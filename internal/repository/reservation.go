package repository

import (
	"context"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
)

// ReservationRepository stores and queries reservations. Every returned
// reservation carries its Room.
type ReservationRepository interface {
	// Create inserts a new reservation. Stores that enforce non-overlap
	// themselves return ErrOverlap on violation.
	Create(ctx context.Context, reservation *domain.Reservation) error

	// FindByID returns ErrReservationNotFound when no reservation has the id.
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)

	// FindByIDWithStatus locks and returns the reservation only if it is in
	// status. It returns ErrReservationNotFound when the id is unknown and
	// ErrStatusMismatch when the reservation is in another status.
	FindByIDWithStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)

	FindAll(ctx context.Context) ([]domain.Reservation, error)
	FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error)
	FindByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error)

	// FindOverlapping returns the room's CREATED or CHECKED_IN reservations with
	// checkin <= checkout AND checkout >= checkin (closed on both ends).
	FindOverlapping(ctx context.Context, roomID string, checkin, checkout domain.Date) ([]domain.Reservation, error)

	// Update persists status, amount and timestamps of an existing reservation.
	Update(ctx context.Context, reservation *domain.Reservation) error
}
