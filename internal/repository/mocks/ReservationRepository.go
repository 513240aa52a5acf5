package mocks

import (
	context "context"

	domain "github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	mock "github.com/stretchr/testify/mock"
)

// ReservationRepository is a mock type for the ReservationRepository type
type ReservationRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, reservation
func (_m *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	ret := _m.Called(ctx, reservation)
	return ret.Error(0)
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	ret := _m.Called(ctx, id)
	return reservationOrNil(ret, 0), ret.Error(1)
}

// FindByIDWithStatus provides a mock function with given fields: ctx, id, status
func (_m *ReservationRepository) FindByIDWithStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	ret := _m.Called(ctx, id, status)
	return reservationOrNil(ret, 0), ret.Error(1)
}

// FindAll provides a mock function with given fields: ctx
func (_m *ReservationRepository) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	ret := _m.Called(ctx)
	return reservationsOrNil(ret, 0), ret.Error(1)
}

// FindByStatus provides a mock function with given fields: ctx, status
func (_m *ReservationRepository) FindByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, status)
	return reservationsOrNil(ret, 0), ret.Error(1)
}

// FindByRoom provides a mock function with given fields: ctx, roomID
func (_m *ReservationRepository) FindByRoom(ctx context.Context, roomID string) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, roomID)
	return reservationsOrNil(ret, 0), ret.Error(1)
}

// FindOverlapping provides a mock function with given fields: ctx, roomID, checkin, checkout
func (_m *ReservationRepository) FindOverlapping(ctx context.Context, roomID string, checkin domain.Date, checkout domain.Date) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, roomID, checkin, checkout)
	return reservationsOrNil(ret, 0), ret.Error(1)
}

// Update provides a mock function with given fields: ctx, reservation
func (_m *ReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	ret := _m.Called(ctx, reservation)
	return ret.Error(0)
}

func reservationOrNil(ret mock.Arguments, i int) *domain.Reservation {
	if v := ret.Get(i); v != nil {
		return v.(*domain.Reservation)
	}
	return nil
}

func reservationsOrNil(ret mock.Arguments, i int) []domain.Reservation {
	if v := ret.Get(i); v != nil {
		return v.([]domain.Reservation)
	}
	return nil
}
