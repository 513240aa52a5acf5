package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RafaelDevProjects/hotel-reservation-system/internal/domain"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/repository/mocks"
	"github.com/RafaelDevProjects/hotel-reservation-system/internal/service"
)

type reservationFixture struct {
	service      *service.ReservationService
	rooms        *mocks.RoomRepository
	reservations *mocks.ReservationRepository
	clock        clockwork.FakeClock
	today        domain.Date
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	rooms := new(mocks.RoomRepository)
	reservations := new(mocks.ReservationRepository)
	tx := new(mocks.Transactor)
	tx.PassThrough()
	clock := clockwork.NewFakeClockAt(fixedNow)
	return &reservationFixture{
		service:      service.NewReservationService(rooms, reservations, tx, clock),
		rooms:        rooms,
		reservations: reservations,
		clock:        clock,
		today:        domain.DateOf(fixedNow),
	}
}

func suiteRoom() *domain.Room {
	return &domain.Room{
		ID:            "room-1",
		Number:        101,
		Type:          "Suite",
		Capacity:      2,
		PricePerNight: decimal.RequireFromString("100.00"),
		Status:        domain.RoomStatusActive,
	}
}

func (f *reservationFixture) input(fromToday, nights int) service.CreateReservationInput {
	checkin := f.today.AddDays(fromToday)
	return service.CreateReservationInput{
		RoomID:           "room-1",
		GuestName:        "Ana",
		CheckinExpected:  checkin,
		CheckoutExpected: checkin.AddDays(nights),
	}
}

func TestReservationService_Create_Success(t *testing.T) {
	// Arrange
	f := newReservationFixture(t)
	in := f.input(0, 3)
	f.rooms.On("FindByIDForUpdate", mock.Anything, "room-1").Return(suiteRoom(), nil).Once()
	f.reservations.On("FindOverlapping", mock.Anything, "room-1", in.CheckinExpected, in.CheckoutExpected).
		Return([]domain.Reservation{}, nil).Once()
	f.reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()

	// Act
	r, err := f.service.Create(context.Background(), in)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, domain.ReservationStatusCreated, r.Status)
	assert.Equal(t, "Ana", r.GuestName)
	assert.Equal(t, "room-1", r.Room.ID)
	assert.Nil(t, r.TotalAmount)
	f.rooms.AssertExpectations(t)
	f.reservations.AssertExpectations(t)
}

func TestReservationService_Create_Overlap(t *testing.T) {
	f := newReservationFixture(t)
	in := f.input(1, 1)
	f.rooms.On("FindByIDForUpdate", mock.Anything, "room-1").Return(suiteRoom(), nil).Once()
	f.reservations.On("FindOverlapping", mock.Anything, "room-1", in.CheckinExpected, in.CheckoutExpected).
		Return([]domain.Reservation{{ID: "existing", Status: domain.ReservationStatusCreated}}, nil).Once()

	r, err := f.service.Create(context.Background(), in)

	assert.Nil(t, r)
	assert.ErrorIs(t, err, service.ErrRoomUnavailable)
	assert.ErrorIs(t, err, service.ErrConflict)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReservationService_Create_StoreRejectsOverlap(t *testing.T) {
	f := newReservationFixture(t)
	in := f.input(0, 2)
	f.rooms.On("FindByIDForUpdate", mock.Anything, "room-1").Return(suiteRoom(), nil).Once()
	f.reservations.On("FindOverlapping", mock.Anything, "room-1", in.CheckinExpected, in.CheckoutExpected).
		Return(nil, nil).Once()
	f.reservations.On("Create", mock.Anything, mock.Anything).Return(repository.ErrOverlap).Once()

	_, err := f.service.Create(context.Background(), in)

	assert.ErrorIs(t, err, service.ErrRoomUnavailable)
}

func TestReservationService_Create_RoomNotFound(t *testing.T) {
	f := newReservationFixture(t)
	f.rooms.On("FindByIDForUpdate", mock.Anything, "room-1").Return(nil, repository.ErrRoomNotFound).Once()

	_, err := f.service.Create(context.Background(), f.input(0, 1))

	assert.ErrorIs(t, err, service.ErrRoomNotFound)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestReservationService_Create_InvalidInput(t *testing.T) {
	f := newReservationFixture(t)

	tests := []struct {
		name string
		in   service.CreateReservationInput
		want error
	}{
		{"checkout equals checkin", f.input(0, 0), service.ErrCheckoutNotAfterCheckin},
		{"checkout before checkin", f.input(2, -1), service.ErrCheckoutNotAfterCheckin},
		{"checkin in the past", f.input(-1, 3), service.ErrCheckinInPast},
		{"missing checkin", func() service.CreateReservationInput {
			in := f.input(0, 1)
			in.CheckinExpected = domain.Date{}
			return in
		}(), service.ErrValidation},
		{"short guest name", func() service.CreateReservationInput {
			in := f.input(0, 1)
			in.GuestName = " A "
			return in
		}(), service.ErrValidation},
		{"missing room", func() service.CreateReservationInput {
			in := f.input(0, 1)
			in.RoomID = ""
			return in
		}(), service.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
	f.rooms.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
}

func createdReservation(f *reservationFixture, fromToday, nights int) *domain.Reservation {
	checkin := f.today.AddDays(fromToday)
	return &domain.Reservation{
		ID:               "res-1",
		RoomID:           "room-1",
		Room:             *suiteRoom(),
		GuestName:        "Ana",
		CheckinExpected:  checkin,
		CheckoutExpected: checkin.AddDays(nights),
		Status:           domain.ReservationStatusCreated,
	}
}

func TestReservationService_CheckIn(t *testing.T) {
	t.Run("on the expected day", func(t *testing.T) {
		f := newReservationFixture(t)
		f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCreated).
			Return(createdReservation(f, 0, 3), nil).Once()
		f.reservations.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		r, err := f.service.CheckIn(context.Background(), "res-1")

		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCheckedIn, r.Status)
		assert.Equal(t, fixedNow, r.UpdatedAt)
		f.reservations.AssertExpectations(t)
	})

	t.Run("one day early", func(t *testing.T) {
		f := newReservationFixture(t)
		f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCreated).
			Return(createdReservation(f, 1, 3), nil).Once()
		f.reservations.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		r, err := f.service.CheckIn(context.Background(), "res-1")

		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCheckedIn, r.Status)
	})

	t.Run("two days early", func(t *testing.T) {
		f := newReservationFixture(t)
		f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCreated).
			Return(createdReservation(f, 2, 3), nil).Once()

		_, err := f.service.CheckIn(context.Background(), "res-1")

		assert.ErrorIs(t, err, service.ErrEarlyCheckIn)
		assert.ErrorIs(t, err, service.ErrBusinessRule)
		f.reservations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("wrong status", func(t *testing.T) {
		f := newReservationFixture(t)
		f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCreated).
			Return(nil, repository.ErrStatusMismatch).Once()

		_, err := f.service.CheckIn(context.Background(), "res-1")

		assert.ErrorIs(t, err, service.ErrReservationWrongState)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestReservationService_CheckOut_BillsExpectedNights(t *testing.T) {
	f := newReservationFixture(t)
	r := createdReservation(f, 0, 3)
	r.Status = domain.ReservationStatusCheckedIn
	f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCheckedIn).
		Return(r, nil).Once()
	f.reservations.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.ReservationStatusCheckedOut && r.TotalAmount != nil
	})).Return(nil).Once()

	// leaving early does not change the bill
	f.clock.Advance(24 * time.Hour)
	got, err := f.service.CheckOut(context.Background(), "res-1")

	require.NoError(t, err)
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, "300.00", got.TotalAmount.StringFixed(2))
	f.reservations.AssertExpectations(t)
}

func TestReservationService_CheckOut_NotCheckedIn(t *testing.T) {
	f := newReservationFixture(t)
	f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCheckedIn).
		Return(nil, repository.ErrStatusMismatch).Once()

	_, err := f.service.CheckOut(context.Background(), "res-1")

	assert.ErrorIs(t, err, service.ErrReservationWrongState)
}

func TestReservationService_Cancel(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newReservationFixture(t)
		f.reservations.On("FindByIDWithStatus", mock.Anything, "res-1", domain.ReservationStatusCreated).
			Return(createdReservation(f, 3, 2), nil).Once()
		f.reservations.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

		r, err := f.service.Cancel(context.Background(), "res-1")

		require.NoError(t, err)
		assert.Equal(t, domain.ReservationStatusCanceled, r.Status)
		assert.Nil(t, r.TotalAmount)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newReservationFixture(t)
		f.reservations.On("FindByIDWithStatus", mock.Anything, "missing", domain.ReservationStatusCreated).
			Return(nil, repository.ErrReservationNotFound).Once()

		_, err := f.service.Cancel(context.Background(), "missing")

		assert.ErrorIs(t, err, service.ErrReservationNotFound)
	})
}

func TestReservationService_FindByRoom(t *testing.T) {
	t.Run("known room", func(t *testing.T) {
		f := newReservationFixture(t)
		f.rooms.On("FindByID", mock.Anything, "room-1").Return(suiteRoom(), nil).Once()
		f.reservations.On("FindByRoom", mock.Anything, "room-1").
			Return([]domain.Reservation{*createdReservation(f, 0, 1)}, nil).Once()

		got, err := f.service.FindByRoom(context.Background(), "room-1")

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newReservationFixture(t)
		f.rooms.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrRoomNotFound).Once()

		_, err := f.service.FindByRoom(context.Background(), "missing")

		assert.ErrorIs(t, err, service.ErrRoomNotFound)
		f.reservations.AssertNotCalled(t, "FindByRoom", mock.Anything, mock.Anything)
	})
}

func TestReservationService_FindByID_NotFound(t *testing.T) {
	f := newReservationFixture(t)
	f.reservations.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrReservationNotFound).Once()

	_, err := f.service.FindByID(context.Background(), "missing")

	assert.ErrorIs(t, err, service.ErrReservationNotFound)
}
