package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
)

// RegisterRoomInput carries the fields of a new room.
type RegisterRoomInput struct {
	Number        int    `validate:"gt=0"`
	Type          string `validate:"required,max=100"`
	Capacity      int    `validate:"gte=1"`
	PricePerNight decimal.Decimal
}

// RoomService manages the room inventory.
type RoomService struct {
	roomRepo repository.RoomRepository
	tx       repository.Transactor
	clock    clockwork.Clock
}

// NewRoomService creates a RoomService.
func NewRoomService(roomRepo repository.RoomRepository, tx repository.Transactor, clock clockwork.Clock) *RoomService {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for RoomService")
	}
	if tx == nil {
		panic("Transactor cannot be nil for RoomService")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RoomService{roomRepo: roomRepo, tx: tx, clock: clock}
}

// Register creates an ACTIVE room. The number must not be used by any other
// room, active or not.
func (s *RoomService) Register(ctx context.Context, in RegisterRoomInput) (*domain.Room, error) {
	in.Type = strings.TrimSpace(in.Type)
	logCtx := logrus.WithFields(logrus.Fields{"room_number": in.Number, "room_type": in.Type})

	if err := validateRoomInput(in); err != nil {
		logCtx.WithError(err).Warn("Register: invalid room input")
		return nil, err
	}

	now := s.clock.Now()
	room := &domain.Room{
		ID:            uuid.NewString(),
		Number:        in.Number,
		Type:          in.Type,
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		Status:        domain.RoomStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.roomRepo.FindByNumber(ctx, in.Number)
		if err == nil && existing != nil {
			return ErrRoomNumberTaken
		}
		if err != nil && !errors.Is(err, repository.ErrRoomNotFound) {
			logCtx.WithError(err).Error("Register: failed to look up room number")
			return ErrInternalServer
		}

		if err := s.roomRepo.Create(ctx, room); err != nil {
			// a concurrent registration may win the unique index
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return ErrRoomNumberTaken
			}
			logCtx.WithError(err).Error("Register: failed to save room")
			return ErrInternalServer
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRoomNumberTaken) {
			logCtx.Warn("Register: room number already exists")
		}
		return nil, err
	}

	logCtx.WithField("room_id", room.ID).Info("Room registered")
	return room, nil
}

// Deactivate marks a room INACTIVE. Deactivating an inactive room succeeds
// without changes.
func (s *RoomService) Deactivate(ctx context.Context, id string) error {
	logCtx := logrus.WithField("room_id", id)

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		room, err := s.findRoom(ctx, id, s.roomRepo.FindByIDForUpdate)
		if err != nil {
			return err
		}
		if !room.IsActive() {
			logCtx.Debug("Deactivate: room already inactive")
			return nil
		}

		room.Deactivate()
		room.UpdatedAt = s.clock.Now()
		if err := s.roomRepo.Update(ctx, room); err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			logCtx.WithError(err).Error("Deactivate: failed to update room")
			return ErrInternalServer
		}
		logCtx.Info("Room deactivated")
		return nil
	})
}

// Get returns one room.
func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.findRoom(ctx, id, s.roomRepo.FindByID)
}

// List returns all rooms, or only those in status when it is non-empty.
func (s *RoomService) List(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	var (
		rooms []domain.Room
		err   error
	)
	if status == "" {
		rooms, err = s.roomRepo.FindAll(ctx)
	} else {
		rooms, err = s.roomRepo.FindByStatus(ctx, status)
	}
	if err != nil {
		logrus.WithError(err).WithField("status", status).Error("List: failed to query rooms")
		return nil, ErrInternalServer
	}
	return rooms, nil
}

// ListByTypeAndStatus returns rooms of roomType in status.
func (s *RoomService) ListByTypeAndStatus(ctx context.Context, roomType string, status domain.RoomStatus) ([]domain.Room, error) {
	rooms, err := s.roomRepo.FindByTypeAndStatus(ctx, roomType, status)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"room_type": roomType, "status": status}).
			Error("ListByTypeAndStatus: failed to query rooms")
		return nil, ErrInternalServer
	}
	return rooms, nil
}

func (s *RoomService) findRoom(ctx context.Context, id string, find func(context.Context, string) (*domain.Room, error)) (*domain.Room, error) {
	room, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			logrus.WithField("room_id", id).Warn("Room not found")
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", id).Error("Failed to load room")
		return nil, ErrInternalServer
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func validateRoomInput(in RegisterRoomInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if !in.PricePerNight.IsPositive() {
		return validationError("pricePerNight must be greater than 0")
	}
	if !in.PricePerNight.Equal(in.PricePerNight.Round(2)) {
		return validationError("pricePerNight must have at most 2 decimal places")
	}
	return nil
}
