package repository

import (
	"context"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
)

// RoomRepository stores and queries rooms.
type RoomRepository interface {
	// Create inserts a new room. A taken number yields ErrDuplicateEntry.
	Create(ctx context.Context, room *domain.Room) error

	// FindByID returns ErrRoomNotFound when no room has the id.
	FindByID(ctx context.Context, id string) (*domain.Room, error)

	// FindByIDForUpdate is FindByID plus a row lock held until the surrounding
	// transaction ends. Bookings of one room serialise on this lock.
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Room, error)

	// FindByNumber returns ErrRoomNotFound when the number is free.
	FindByNumber(ctx context.Context, number int) (*domain.Room, error)

	FindAll(ctx context.Context) ([]domain.Room, error)
	FindByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error)
	FindByTypeAndStatus(ctx context.Context, roomType string, status domain.RoomStatus) ([]domain.Room, error)

	// Update persists a changed room. An unknown id yields ErrRoomNotFound.
	Update(ctx context.Context, room *domain.Room) error
}
