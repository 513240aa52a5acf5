package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
)

// earlyCheckInDays is how many days before the expected date a guest may check in.
const earlyCheckInDays = 1

// CreateReservationInput carries the fields of a new booking.
type CreateReservationInput struct {
	RoomID           string `validate:"required"`
	GuestName        string `validate:"required,min=2,max=120"`
	CheckinExpected  domain.Date
	CheckoutExpected domain.Date
}

// ReservationService drives reservations through their lifecycle:
// CREATED -> CHECKED_IN -> CHECKED_OUT, or CREATED -> CANCELED.
type ReservationService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	tx              repository.Transactor
	clock           clockwork.Clock
}

// NewReservationService creates a ReservationService.
func NewReservationService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	tx repository.Transactor,
	clock clockwork.Clock,
) *ReservationService {
	if roomRepo == nil || reservationRepo == nil {
		panic("repositories cannot be nil for ReservationService")
	}
	if tx == nil {
		panic("Transactor cannot be nil for ReservationService")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ReservationService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		tx:              tx,
		clock:           clock,
	}
}

// Create books a room for [CheckinExpected, CheckoutExpected]. The room must
// have no CREATED or CHECKED_IN reservation whose range touches the new one;
// a stay ending on the new check-in day counts as overlapping.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	in.GuestName = strings.TrimSpace(in.GuestName)
	logCtx := logrus.WithFields(logrus.Fields{
		"room_id":  in.RoomID,
		"checkin":  in.CheckinExpected.String(),
		"checkout": in.CheckoutExpected.String(),
	})

	if err := s.validateCreate(in); err != nil {
		logCtx.WithError(err).Warn("Create: invalid reservation input")
		return nil, err
	}

	var reservation *domain.Reservation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		room, err := s.roomRepo.FindByIDForUpdate(ctx, in.RoomID)
		if err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			logCtx.WithError(err).Error("Create: failed to load room")
			return ErrInternalServer
		}

		overlapping, err := s.reservationRepo.FindOverlapping(ctx, room.ID, in.CheckinExpected, in.CheckoutExpected)
		if err != nil {
			logCtx.WithError(err).Error("Create: failed to query overlapping reservations")
			return ErrInternalServer
		}
		if len(overlapping) > 0 {
			logCtx.WithField("conflicting_id", overlapping[0].ID).Warn("Create: room not available")
			return ErrRoomUnavailable
		}

		now := s.clock.Now()
		reservation = &domain.Reservation{
			ID:               uuid.NewString(),
			RoomID:           room.ID,
			Room:             *room,
			GuestName:        in.GuestName,
			CheckinExpected:  in.CheckinExpected,
			CheckoutExpected: in.CheckoutExpected,
			Status:           domain.ReservationStatusCreated,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.reservationRepo.Create(ctx, reservation); err != nil {
			if errors.Is(err, repository.ErrOverlap) {
				logCtx.WithError(err).Warn("Create: store rejected overlapping reservation")
				return ErrRoomUnavailable
			}
			logCtx.WithError(err).Error("Create: failed to save reservation")
			return ErrInternalServer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx.WithField("reservation_id", reservation.ID).Info("Reservation created")
	return reservation, nil
}

// CheckIn moves a CREATED reservation to CHECKED_IN. Guests may arrive at
// most one day before the expected check-in date.
func (s *ReservationService) CheckIn(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.advance(ctx, id, domain.ReservationStatusCreated, "CheckIn", func(r *domain.Reservation) error {
		today := domain.DateOf(s.clock.Now())
		if r.CheckinExpected.After(today.AddDays(earlyCheckInDays)) {
			return ErrEarlyCheckIn
		}
		return r.CheckIn(s.clock.Now())
	})
}

// CheckOut moves a CHECKED_IN reservation to CHECKED_OUT and bills the room's
// nightly price for every expected night.
func (s *ReservationService) CheckOut(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.advance(ctx, id, domain.ReservationStatusCheckedIn, "CheckOut", func(r *domain.Reservation) error {
		return r.CheckOut(r.Room.PricePerNight, s.clock.Now())
	})
}

// Cancel moves a CREATED reservation to CANCELED.
func (s *ReservationService) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.advance(ctx, id, domain.ReservationStatusCreated, "Cancel", func(r *domain.Reservation) error {
		return r.Cancel(s.clock.Now())
	})
}

// advance loads the reservation in status `from` under lock, applies step and
// saves the result, all in one transaction.
func (s *ReservationService) advance(
	ctx context.Context,
	id string,
	from domain.ReservationStatus,
	op string,
	step func(r *domain.Reservation) error,
) (*domain.Reservation, error) {
	logCtx := logrus.WithFields(logrus.Fields{"reservation_id": id, "op": op})

	var reservation *domain.Reservation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		r, err := s.reservationRepo.FindByIDWithStatus(ctx, id, from)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrReservationNotFound):
				logCtx.Warn("Reservation not found")
				return ErrReservationNotFound
			case errors.Is(err, repository.ErrStatusMismatch):
				logCtx.WithField("required_status", from).Warn("Reservation not in required status")
				return ErrReservationWrongState
			}
			logCtx.WithError(err).Error("Failed to load reservation")
			return ErrInternalServer
		}

		if err := step(r); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				return ErrReservationWrongState
			}
			logCtx.WithError(err).Warn("Transition rejected")
			return err
		}

		if err := s.reservationRepo.Update(ctx, r); err != nil {
			if errors.Is(err, repository.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			logCtx.WithError(err).Error("Failed to update reservation")
			return ErrInternalServer
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx.WithField("status", reservation.Status).Info("Reservation status changed")
	return reservation, nil
}

// FindAll returns every reservation.
func (s *ReservationService) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.reservationRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("FindAll: failed to query reservations")
		return nil, ErrInternalServer
	}
	return reservations, nil
}

// FindByStatus returns the reservations in status.
func (s *ReservationService) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	reservations, err := s.reservationRepo.FindByStatus(ctx, status)
	if err != nil {
		logrus.WithError(err).WithField("status", status).Error("FindByStatus: failed to query reservations")
		return nil, ErrInternalServer
	}
	return reservations, nil
}

// FindByID returns one reservation.
func (s *ReservationService) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			logrus.WithField("reservation_id", id).Warn("FindByID: reservation not found")
			return nil, ErrReservationNotFound
		}
		logrus.WithError(err).WithField("reservation_id", id).Error("FindByID: repository error")
		return nil, ErrInternalServer
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

// FindByRoom returns all reservations of a room, whatever their status.
func (s *ReservationService) FindByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", roomID).Error("FindByRoom: failed to load room")
		return nil, ErrInternalServer
	}
	reservations, err := s.reservationRepo.FindByRoom(ctx, roomID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Error("FindByRoom: failed to query reservations")
		return nil, ErrInternalServer
	}
	return reservations, nil
}

func (s *ReservationService) validateCreate(in CreateReservationInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.CheckinExpected.IsZero() {
		return validationError("checkinExpected is mandatory")
	}
	if in.CheckoutExpected.IsZero() {
		return validationError("checkoutExpected is mandatory")
	}
	if !in.CheckoutExpected.After(in.CheckinExpected) {
		return ErrCheckoutNotAfterCheckin
	}
	if in.CheckinExpected.Before(domain.DateOf(s.clock.Now())) {
		return ErrCheckinInPast
	}
	return nil
}
