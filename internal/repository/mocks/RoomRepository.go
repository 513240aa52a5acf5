// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	context "context"

	domain "github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// RoomRepository is a mock type for the RoomRepository type
type RoomRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, room
func (_m *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	ret := _m.Called(ctx, room)
	return ret.Error(0)
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	ret := _m.Called(ctx, id)
	return roomOrNil(ret, 0), ret.Error(1)
}

// FindByIDForUpdate provides a mock function with given fields: ctx, id
func (_m *RoomRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Room, error) {
	ret := _m.Called(ctx, id)
	return roomOrNil(ret, 0), ret.Error(1)
}

// FindByNumber provides a mock function with given fields: ctx, number
func (_m *RoomRepository) FindByNumber(ctx context.Context, number int) (*domain.Room, error) {
	ret := _m.Called(ctx, number)
	return roomOrNil(ret, 0), ret.Error(1)
}

// FindAll provides a mock function with given fields: ctx
func (_m *RoomRepository) FindAll(ctx context.Context) ([]domain.Room, error) {
	ret := _m.Called(ctx)
	return roomsOrNil(ret, 0), ret.Error(1)
}

// FindByStatus provides a mock function with given fields: ctx, status
func (_m *RoomRepository) FindByStatus(ctx context.Context, status domain.RoomStatus) ([]domain.Room, error) {
	ret := _m.Called(ctx, status)
	return roomsOrNil(ret, 0), ret.Error(1)
}

// FindByTypeAndStatus provides a mock function with given fields: ctx, roomType, status
func (_m *RoomRepository) FindByTypeAndStatus(ctx context.Context, roomType string, status domain.RoomStatus) ([]domain.Room, error) {
	ret := _m.Called(ctx, roomType, status)
	return roomsOrNil(ret, 0), ret.Error(1)
}

// Update provides a mock function with given fields: ctx, room
func (_m *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	ret := _m.Called(ctx, room)
	return ret.Error(0)
}

func roomOrNil(ret mock.Arguments, i int) *domain.Room {
	if v := ret.Get(i); v != nil {
		return v.(*domain.Room)
	}
	return nil
}

func roomsOrNil(ret mock.Arguments, i int) []domain.Room {
	if v := ret.Get(i); v != nil {
		return v.([]domain.Room)
	}
	return nil
}
