package memory

import (
	"context"
	"sort"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
)

// ReservationRepository implements repository.ReservationRepository over a Store.
// Returned reservations carry the room as currently stored.
type ReservationRepository struct {
	s *Store
}

func (r *ReservationRepository) Create(_ context.Context, reservation *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reservations[reservation.ID]; ok {
		return repository.ErrDuplicateEntry
	}
	if _, ok := r.s.rooms[reservation.RoomID]; !ok {
		return repository.ErrRoomNotFound
	}
	stored := *reservation
	stored.Room = domain.Room{}
	r.s.reservations[reservation.ID] = stored
	return nil
}

func (r *ReservationRepository) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return r.withRoom(reservation), nil
}

func (r *ReservationRepository) FindByIDWithStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	reservation, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != status {
		return nil, repository.ErrStatusMismatch
	}
	return reservation, nil
}

func (r *ReservationRepository) FindAll(_ context.Context) ([]domain.Reservation, error) {
	return r.filter(func(domain.Reservation) bool { return true }), nil
}

func (r *ReservationRepository) FindByStatus(_ context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	return r.filter(func(res domain.Reservation) bool { return res.Status == status }), nil
}

func (r *ReservationRepository) FindByRoom(_ context.Context, roomID string) ([]domain.Reservation, error) {
	return r.filter(func(res domain.Reservation) bool { return res.RoomID == roomID }), nil
}

func (r *ReservationRepository) FindOverlapping(_ context.Context, roomID string, checkin, checkout domain.Date) ([]domain.Reservation, error) {
	return r.filter(func(res domain.Reservation) bool {
		return res.RoomID == roomID && res.IsBlocking() && res.Overlaps(checkin, checkout)
	}), nil
}

func (r *ReservationRepository) Update(_ context.Context, reservation *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.reservations[reservation.ID]
	if !ok {
		return repository.ErrReservationNotFound
	}
	stored.Status = reservation.Status
	stored.UpdatedAt = reservation.UpdatedAt
	if reservation.TotalAmount != nil {
		amount := *reservation.TotalAmount
		stored.TotalAmount = &amount
	}
	r.s.reservations[reservation.ID] = stored
	return nil
}

// withRoom must be called with r.s.mu held.
func (r *ReservationRepository) withRoom(reservation domain.Reservation) *domain.Reservation {
	reservation.Room = r.s.rooms[reservation.RoomID]
	return &reservation
}

func (r *ReservationRepository) filter(keep func(domain.Reservation) bool) []domain.Reservation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Reservation, 0)
	for _, reservation := range r.s.reservations {
		if keep(reservation) {
			out = append(out, *r.withRoom(reservation))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckinExpected.Equal(out[j].CheckinExpected) {
			return out[i].CheckinExpected.Before(out[j].CheckinExpected)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
