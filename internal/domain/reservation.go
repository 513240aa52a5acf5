package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus is a state in the reservation lifecycle.
//
//	CREATED -> CHECKED_IN -> CHECKED_OUT
//	CREATED -> CANCELED
type ReservationStatus string

const (
	ReservationStatusCreated    ReservationStatus = "CREATED"
	ReservationStatusCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationStatusCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationStatusCanceled   ReservationStatus = "CANCELED"
)

// BlockingStatuses are the statuses that hold a room for their date range.
var BlockingStatuses = []ReservationStatus{ReservationStatusCreated, ReservationStatusCheckedIn}

// ErrInvalidTransition is returned when a transition is attempted from the wrong state.
var ErrInvalidTransition = errors.New("invalid reservation status transition")

// Reservation is a booking of one room for a guest over a date range.
type Reservation struct {
	ID               string            `gorm:"primaryKey;type:varchar(36)"`
	RoomID           string            `gorm:"type:varchar(36);index:idx_reservation_room_dates;not null"`
	Room             Room              `gorm:"foreignKey:RoomID;references:ID"`
	GuestName        string            `gorm:"type:varchar(120);not null"`
	CheckinExpected  Date              `gorm:"type:date;index:idx_reservation_room_dates;not null"`
	CheckoutExpected Date              `gorm:"type:date;index:idx_reservation_room_dates;not null"`
	Status           ReservationStatus `gorm:"type:varchar(20);index;not null"`
	TotalAmount      *decimal.Decimal  `gorm:"type:decimal(12,2)"` // nil until check-out
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsBlocking reports whether the reservation still holds its room.
func (r *Reservation) IsBlocking() bool {
	return r.Status == ReservationStatusCreated || r.Status == ReservationStatusCheckedIn
}

// Overlaps reports whether the reservation's range intersects [checkin, checkout]
// with both ends closed, so a stay starting on another stay's checkout day overlaps.
func (r *Reservation) Overlaps(checkin, checkout Date) bool {
	return !r.CheckinExpected.After(checkout) && !r.CheckoutExpected.Before(checkin)
}

// Nights is the number of billed nights, taken from the expected dates.
func (r *Reservation) Nights() int64 {
	return r.CheckinExpected.DaysUntil(r.CheckoutExpected)
}

// CheckIn moves a CREATED reservation to CHECKED_IN.
func (r *Reservation) CheckIn(at time.Time) error {
	return r.transition(ReservationStatusCreated, ReservationStatusCheckedIn, at)
}

// CheckOut moves a CHECKED_IN reservation to CHECKED_OUT and settles the bill
// at pricePerNight times the expected number of nights.
func (r *Reservation) CheckOut(pricePerNight decimal.Decimal, at time.Time) error {
	if err := r.transition(ReservationStatusCheckedIn, ReservationStatusCheckedOut, at); err != nil {
		return err
	}
	total := pricePerNight.Mul(decimal.NewFromInt(r.Nights()))
	r.TotalAmount = &total
	return nil
}

// Cancel moves a CREATED reservation to CANCELED.
func (r *Reservation) Cancel(at time.Time) error {
	return r.transition(ReservationStatusCreated, ReservationStatusCanceled, at)
}

func (r *Reservation) transition(from, to ReservationStatus, at time.Time) error {
	if r.Status != from {
		return ErrInvalidTransition
	}
	r.Status = to
	r.UpdatedAt = at
	return nil
}
